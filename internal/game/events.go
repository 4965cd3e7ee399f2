package game

// Inbound lobby events, handled by the room pool.
const (
	eventPlayerAttemptCreateRoom = "playerAttemptCreateRoom"
	eventPlayerAttemptJoinRoom   = "playerAttemptJoinRoom"
	eventPlayerAttemptLeaveRoom  = "playerAttemptLeaveRoom"
	eventPlayerAttemptStartGame  = "playerAttemptStartGame"
	eventPlayerAttemptEndGame    = "playerAttemptEndGame"
)

// Outbound lobby acknowledgments and broadcasts.
const (
	eventPlayerCreateRoomSuccess = "playerCreateRoomSuccess"
	eventPlayerCreateRoomFailure = "playerCreateRoomFailure"
	eventPlayerJoinRoomSuccess   = "playerJoinRoomSuccess"
	eventPlayerJoinRoomFailure   = "playerJoinRoomFailure"
	eventPlayerLeaveRoomSuccess  = "playerLeaveRoomSuccess"
	eventPlayerLeaveRoomFailure  = "playerLeaveRoomFailure"
	eventUpdateLobby             = "updateLobby"
	eventUpdateGame              = "updateGame"
)

// In-game events: the phase spine of one session. Phase names double as
// socket event names; transitions are deterministic given (current phase,
// authorized role, payload).
const (
	eventShowHostShowFastestFingerRules        = "showHostShowFastestFingerRules"
	eventShowHostCueFastestFingerQuestion      = "showHostCueFastestFingerQuestion"
	eventShowHostShowFastestFingerQuestionText = "showHostShowFastestFingerQuestionText"
	eventShowHostCueFastestFingerThreeStrikes  = "showHostCueFastestFingerThreeStrikes"
	eventShowHostRevealFastestFingerChoices    = "showHostRevealFastestFingerQuestionChoices"
	eventContestantFastestFingerChoose         = "contestantFastestFingerChoose"
	eventFastestFingerTimeUp                   = "fastestFingerTimeUp"
	eventShowHostCueFastestFingerAnswerReveal  = "showHostCueFastestFingerAnswerRevealAudio"
	eventShowHostRevealFastestFingerAnswer     = "showHostRevealFastestFingerAnswer"
	eventShowHostRevealFastestFingerResults    = "showHostRevealFastestFingerResults"
	eventShowHostAcceptHotSeatPlayer           = "showHostAcceptHotSeatPlayer"
	eventShowHostCueHotSeatRules               = "showHostCueHotSeatRules"
	eventShowHostCueHotSeatQuestion            = "showHostCueHotSeatQuestion"
	eventShowHostShowHotSeatQuestionText       = "showHostShowHotSeatQuestionText"
	eventShowHostRevealHotSeatChoice           = "showHostRevealHotSeatChoice"
	eventHotSeatChoose                         = "hotSeatChoose"
	eventContestantChoose                      = "contestantChoose"
	eventHotSeatFinalAnswer                    = "hotSeatFinalAnswer"
	eventShowHostRevealHotSeatQuestionVictory  = "showHostRevealHotSeatQuestionVictory"
	eventShowHostRevealHotSeatQuestionLoss     = "showHostRevealHotSeatQuestionLoss"
	eventShowHostSayGoodbyeToHotSeat           = "showHostSayGoodbyeToHotSeat"
	eventHotSeatWalkAway                       = "hotSeatWalkAway"
	eventHotSeatConfirmWalkAway                = "hotSeatConfirmWalkAway"
	eventHotSeatUseFiftyFifty                  = "hotSeatUseFiftyFifty"
	eventHotSeatConfirmFiftyFifty              = "hotSeatConfirmFiftyFifty"
	eventHotSeatUsePhoneAFriend                = "hotSeatUsePhoneAFriend"
	eventHotSeatConfirmPhoneAFriend            = "hotSeatConfirmPhoneAFriend"
	eventHotSeatPickPhoneAFriend               = "hotSeatPickPhoneAFriend"
	eventContestantSetPhoneConfidence          = "contestantSetPhoneConfidence"
	eventHotSeatUseAskTheAudience              = "hotSeatUseAskTheAudience"
	eventHotSeatConfirmAskTheAudience          = "hotSeatConfirmAskTheAudience"
	eventShowHostStartAskTheAudience           = "showHostStartAskTheAudience"

	// Internal continuations fired only by timers; never accepted from a
	// client.
	eventVictoryContinuation  = "showHostRevealHotSeatQuestionVictoryContinuation"
	eventFinishAskTheAudience = "finishAskTheAudience"
)

// Events during which a contestant may submit a hot seat choice (partial
// credit, friend suggestion or audience vote).
var contestantChoosableEvents = stringSet(
	eventShowHostRevealHotSeatChoice,
	eventHotSeatChoose,
	eventHotSeatUseFiftyFifty,
	eventHotSeatUsePhoneAFriend,
	eventHotSeatConfirmPhoneAFriend,
	eventHotSeatPickPhoneAFriend,
	eventHotSeatUseAskTheAudience,
	eventHotSeatConfirmAskTheAudience,
	eventShowHostStartAskTheAudience,
	eventHotSeatWalkAway,
)

// Events during which the hot seat player may pick an answer.
var hotSeatChoosableEvents = stringSet(
	eventShowHostRevealHotSeatChoice,
)

// Events during which fastest finger submissions are open.
var fastestFingerChoosableEvents = stringSet(
	eventShowHostRevealFastestFingerChoices,
)

// Events during which fastest finger results are on screen.
var showFastestFingerResultsEvents = stringSet(
	eventShowHostRevealFastestFingerResults,
	eventShowHostAcceptHotSeatPlayer,
)

// Events during which completed lifeline results stay visible.
var showLifelineResultsEvents = stringSet(
	eventShowHostRevealHotSeatChoice,
	eventHotSeatChoose,
	eventHotSeatFinalAnswer,
	eventHotSeatUseFiftyFifty,
	eventHotSeatUsePhoneAFriend,
	eventHotSeatUseAskTheAudience,
	eventHotSeatWalkAway,
)

func stringSet(events ...string) map[string]bool {
	set := make(map[string]bool, len(events))
	for _, e := range events {
		set[e] = true
	}
	return set
}
