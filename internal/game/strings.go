package game

// Display strings sent to clients. Kept in one place so a localization layer
// can swap them out later without touching game logic.
const (
	StrAcceptHotSeatPlayer          = "Bring winner to hot seat"
	StrCueFastestFingerMusic        = "Cue Fastest Finger music"
	StrCueFastestFingerAnswerReveal = "Cue answer reveal music"
	StrFastestFingerWinner          = "Fastest Finger Winner:"
	StrRevealFastestFingerChoice    = "Reveal Fastest Finger choices"
	StrRevealFastestFingerAnswer    = "Reveal Fastest Finger answer"
	StrRevealFastestFingerResults   = "Reveal Fastest Finger results"
	StrShowFastestFingerQuestion    = "Show Fastest Finger question"
	StrStartNewRound                = "Start a new round"

	StrShowHostFastestFingerRules   = "Read over the rules of Fastest Finger with the contestants."
	StrContestantFastestFingerRules = "Put the four choices in order as fast as you can. The best time takes the hot seat!"

	StrContestantPhoneAFriendChoosing = "You are being phoned! Set your confidence. Higher confidence is higher risk, but higher reward."
	StrContestantPhoneAFriendNoChoice = "You are being phoned! Make a selection to help the hot seat player out."
	StrContestantPhoneAFriendRules    = "Looks like our hot seat player needs help. If you are phoned, tell them how confident you are in your answer."
	StrContestantPhoneAFriendWait     = "Somebody else was picked."
	StrContestantRules                = "You're not in the hot seat, but you're still in the game! Answer questions for instant payouts of partial value. Do it quickest for the most cash!"
	StrContestantSubmitConfidence     = "Lock in confidence value"

	StrShowHotSeatRules              = "Go over the rules"
	StrCueHotSeatQuestion            = "Cue question"
	StrHotSeatRules                  = "Answer 15 questions of increasing difficulty to get to a million dollars. Other contestants can answer on their own for cash. Using lifelines will help them out. Good luck!"
	StrShowHotSeatQuestion           = "Show question text"
	StrRevealHotSeatChoice           = "Reveal choice"
	StrHotSeatFinalAnswer            = "Final Answer?"
	StrHotSeatConfirmWalkAway        = "Walk Away?"
	StrHotSeatConfirmFiftyFifty      = "Use 50/50?"
	StrHotSeatConfirmPhoneAFriend    = "Phone a friend?"
	StrHotSeatConfirmAskTheAudience  = "Ask the Audience?"
	StrHotSeatPhoneAFriendChoosing   = "Your friend is pondering their confidence in their answer..."
	StrHotSeatPhoneAFriendChoosingAI = "Reggie is thinking..."
	StrHotSeatPhoneAFriendRules      = "Click on a player on the left pane to phone them. They will tell you how confident they are with their choice."
	StrHotSeatPhoneAFriendRulesAI    = "Looks like no one is here... We will ring our AI friend Reggie for help."
	StrHotSeatVictory                = "Correct!"
	StrHotSeatLoss                   = "Sorry..."
	StrSayGoodbye                    = "Say goodbye to contestant"

	StrShowHostPhoneAFriendChoosing = "The hot seat player's friend is choosing... Make sure to remind them about the risk/reward factor."
	StrShowHostPhoneAFriendRules    = "The hot seat player is picking a friend to phone..."
	StrShowHostRules                = "You are hosting the game. Take this moment to go over the rules."
	StrShowHostStartAskTheAudience  = "Poll the audience"

	StrShowHostAskTheAudienceInterlude   = "Ask the audience is in play. Build up some tension before polling everyone."
	StrHotSeatAskTheAudienceInterlude    = "The audience will be polled shortly. Remember their help is not a guarantee."
	StrContestantAskTheAudienceInterlude = "Ask the audience is in play. Get ready to cast your vote!"
	StrHotSeatAskTheAudienceVote         = "The audience is voting..."
	StrContestantAskTheAudienceVote      = "Cast your vote now!"

	StrAIFriendName = "Reggie"

	StrAreYouSure       = "Are you sure?"
	StrAudienceLabel    = "Audience:"
	StrContestantsLabel = "Contestants:"
	StrTotalWinnings    = "Total Winnings:"
	StrYes              = "Yes"
	StrNo               = "No"
)
