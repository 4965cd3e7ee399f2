package game

import "math/rand"

// ServerState holds the full, unredacted state of one running session. All
// access is serialized by the owning room's mutex; methods here never lock.
type ServerState struct {
	playerMap *PlayerMap
	rng       *rand.Rand

	showHost      *Player
	hotSeatPlayer *Player

	fastestFingerQuestion *FastestFingerQuestion
	hotSeatQuestion       *HotSeatQuestion

	// fastestFingerResults is scored once when the results are revealed.
	// Snapshots read it; they never recompute.
	fastestFingerResults *FastestFingerResults

	// Ladder position. -1 before the first question; incremented before use.
	hotSeatQuestionIndex int

	fiftyFifty     *FiftyFiftyLifeline
	phoneAFriend   *PhoneAFriendLifeline
	askTheAudience *AskTheAudienceLifeline

	showHostStepDialog *StepDialog
	hotSeatStepDialog  *StepDialog

	// Per-role info texts, so every client sees something relevant.
	showHostInfoText   string
	hotSeatInfoText    string
	contestantInfoText string

	audioCommand      *AudioCommand
	celebrationBanner *CelebrationBanner
}

func NewServerState(playerMap *PlayerMap, rng *rand.Rand) *ServerState {
	s := &ServerState{
		playerMap: playerMap,
		rng:       rng,
	}
	s.StartNewRound(false)
	return s
}

// StartNewRound resets everything a fresh ladder round needs: questions,
// lifelines, dialogs and ephemeral display state. Accumulated money and the
// show host survive; the hot seat player survives only when asked to.
func (s *ServerState) StartNewRound(keepHotSeatPlayer bool) {
	if !keepHotSeatPlayer {
		if s.hotSeatPlayer != nil {
			s.hotSeatPlayer.IsHotSeatPlayer = false
		}
		s.hotSeatPlayer = nil
	}

	s.ClearTimers()
	s.showHostStepDialog = nil
	s.hotSeatStepDialog = nil

	s.fastestFingerQuestion = nil
	s.fastestFingerResults = nil
	s.hotSeatQuestion = nil
	s.hotSeatQuestionIndex = -1
	s.ClearAllPlayerAnswers()

	s.fiftyFifty = NewFiftyFiftyLifeline(s.rng)
	s.phoneAFriend = NewPhoneAFriendLifeline(s.rng)
	s.askTheAudience = NewAskTheAudienceLifeline(s.playerMap, s.rng)

	s.celebrationBanner = nil
	s.ClearEphemeralFields()
}

// ClearAllPlayerAnswers wipes every player's recorded answers, regardless of
// question type.
func (s *ServerState) ClearAllPlayerAnswers() {
	s.playerMap.Do(func(p *Player) { p.ClearAllAnswers() })
}

// ClearEphemeralFields drops fields meant to reach clients for one update
// only. Info texts persist for a single socket event; exceptions are set
// again by the relevant handler. Audio commands execute once.
func (s *ServerState) ClearEphemeralFields() {
	s.showHostInfoText = ""
	s.hotSeatInfoText = ""
	s.contestantInfoText = ""
	s.audioCommand = nil
}

// ClearTimers cancels any pending step dialog timeouts.
func (s *ServerState) ClearTimers() {
	if s.showHostStepDialog != nil {
		s.showHostStepDialog.ClearTimeout()
	}
	if s.hotSeatStepDialog != nil {
		s.hotSeatStepDialog.ClearTimeout()
	}
}

// ResetFastestFinger clears the fastest finger question and all answers.
func (s *ServerState) ResetFastestFinger() {
	s.fastestFingerQuestion = nil
	s.fastestFingerResults = nil
	s.ClearAllPlayerAnswers()
}

// ResetHotSeatQuestion clears the hot seat question and all answers.
func (s *ServerState) ResetHotSeatQuestion() {
	s.hotSeatQuestion = nil
	s.ClearAllPlayerAnswers()
}

// ContestantCanChoose reports whether contestants may submit hot seat
// choices during the given socket event.
func (s *ServerState) ContestantCanChoose(currentSocketEvent string) bool {
	return contestantChoosableEvents[currentSocketEvent] &&
		s.hotSeatQuestion != nil && s.hotSeatQuestion.AllChoicesRevealed()
}

// HotSeatPlayerCanChoose reports whether the hot seat player may pick an
// answer during the given socket event.
func (s *ServerState) HotSeatPlayerCanChoose(currentSocketEvent string) bool {
	return hotSeatChoosableEvents[currentSocketEvent] &&
		s.hotSeatQuestion != nil && s.hotSeatQuestion.AllChoicesRevealed()
}

func (s *ServerState) PlayerIsShowHost(p *Player) bool {
	return s.showHost != nil && p == s.showHost
}

func (s *ServerState) PlayerIsHotSeatPlayer(p *Player) bool {
	return s.hotSeatPlayer != nil && p == s.hotSeatPlayer
}

func (s *ServerState) PlayerIsContestant(p *Player) bool {
	return p != nil && p.IsContestant()
}

// ShowHostPresent reports whether a human is acting as show host.
func (s *ServerState) ShowHostPresent() bool {
	return s.showHost != nil
}

func (s *ServerState) SetShowHostByUsername(username string) {
	s.showHost = s.playerMap.GetByUsername(username)
	if s.showHost != nil {
		s.showHost.IsShowHost = true
	}
}

func (s *ServerState) SetHotSeatPlayerByUsername(username string) {
	if s.hotSeatPlayer != nil {
		s.hotSeatPlayer.IsHotSeatPlayer = false
	}
	s.hotSeatPlayer = s.playerMap.GetByUsername(username)
	if s.hotSeatPlayer != nil {
		s.hotSeatPlayer.IsHotSeatPlayer = true
	}
}

func (s *ServerState) SetShowHostStepDialog(d *StepDialog) {
	s.showHostStepDialog = d
}

func (s *ServerState) SetHotSeatStepDialog(d *StepDialog) {
	s.hotSeatStepDialog = d
}

func (s *ServerState) SetCelebrationBanner(b *CelebrationBanner) {
	s.celebrationBanner = b
}

// compressedPlayerList builds the public player roster. When the hot seat
// player is picking a friend to phone, every other contestant row carries the
// pick action.
func (s *ServerState) compressedPlayerList(phoneAFriendSelectable bool) []CompressedPlayer {
	clickAction := ""
	if phoneAFriendSelectable {
		clickAction = eventHotSeatPickPhoneAFriend
	}

	list := []CompressedPlayer{}
	for _, p := range s.playerMap.ListExcludingShowHost() {
		action := clickAction
		if p.IsHotSeatPlayer {
			action = ""
		}
		list = append(list, p.toCompressed(action))
	}
	return list
}

// ToCompressedClientState builds the snapshot one viewer receives: only the
// fields their role may see during the current socket event. It is a pure
// projection and never mutates the round.
func (s *ServerState) ToCompressedClientState(player *Player, currentSocketEvent string) ClientState {
	c := ClientState{}

	c.ClientIsShowHost = s.PlayerIsShowHost(player)
	c.ClientIsHotSeatPlayer = s.PlayerIsHotSeatPlayer(player)
	c.ClientIsContestant = s.PlayerIsContestant(player)

	if c.ClientIsShowHost && s.showHostStepDialog != nil {
		d := s.showHostStepDialog.ToCompressed()
		c.ShowHostStepDialog = &d
	}
	if c.ClientIsHotSeatPlayer && s.hotSeatStepDialog != nil {
		d := s.hotSeatStepDialog.ToCompressed()
		c.HotSeatStepDialog = &d
	}

	switch {
	case c.ClientIsShowHost:
		c.InfoText = s.showHostInfoText
	case c.ClientIsHotSeatPlayer:
		c.InfoText = s.hotSeatInfoText
	default:
		c.InfoText = s.contestantInfoText
	}

	if !c.ClientIsShowHost && fastestFingerChoosableEvents[currentSocketEvent] {
		c.ChoiceAction = eventContestantFastestFingerChoose
	}
	if c.ClientIsHotSeatPlayer && s.HotSeatPlayerCanChoose(currentSocketEvent) {
		c.ChoiceAction = eventHotSeatChoose
	} else if c.ClientIsContestant && s.ContestantCanChoose(currentSocketEvent) {
		c.ChoiceAction = eventContestantChoose
	}

	if s.fastestFingerQuestion != nil {
		var madeChoices []Choice
		if player != nil {
			madeChoices = player.FastestFingerChoices
		}
		c.Question = s.fastestFingerQuestion.toCompressed(madeChoices)
		if len(s.fastestFingerQuestion.RevealedAnswers) > 0 {
			c.FastestFingerRevealedAnswers = s.fastestFingerQuestion.RevealedAnswers
		}
	}

	if showFastestFingerResultsEvents[currentSocketEvent] && s.fastestFingerResults != nil {
		c.FastestFingerRevealedAnswers = nil
		c.FastestFingerResults = s.fastestFingerResults.PlayerResults
		if s.hotSeatPlayer != nil {
			c.FastestFingerBestScore = s.hotSeatPlayer.FastestFingerScore
		}
	}

	if s.hotSeatQuestion != nil {
		var madeChoice *Choice
		showCorrect := s.hotSeatQuestion.CorrectChoiceRevealedForAll
		if c.ClientIsShowHost {
			if s.hotSeatPlayer != nil {
				madeChoice = s.hotSeatPlayer.HotSeatChoice
			}
			showCorrect = s.hotSeatQuestion.CorrectChoiceRevealedForShowHost
		} else if player != nil {
			madeChoice = player.HotSeatChoice
		}
		c.Question = s.hotSeatQuestion.toCompressed(madeChoice, showCorrect)
	}

	buttonsAvailable := c.ClientIsHotSeatPlayer && s.HotSeatPlayerCanChoose(currentSocketEvent)
	c.WalkAwayActionButton = &ActionButton{
		Used:        false,
		SocketEvent: eventHotSeatWalkAway,
		Available:   buttonsAvailable,
	}
	fifty := s.fiftyFifty.ToCompressedHotSeatActionButton(buttonsAvailable)
	c.FiftyFiftyActionButton = &fifty
	phone := s.phoneAFriend.ToCompressedHotSeatActionButton(buttonsAvailable)
	c.PhoneAFriendActionButton = &phone
	audience := s.askTheAudience.ToCompressedHotSeatActionButton(buttonsAvailable)
	c.AskTheAudienceActionButton = &audience

	if s.phoneAFriend.IsActiveForQuestionIndex(s.hotSeatQuestionIndex) {
		if s.phoneAFriend.Friend == player && player != nil {
			if s.phoneAFriend.WaitingForChoiceFromPlayer(player) {
				c.InfoText = StrContestantPhoneAFriendNoChoice
			} else if s.phoneAFriend.WaitingForConfidenceFromPlayer(player) {
				c.ShowPhoneConfidenceMeter = true
			}
		} else if c.ClientIsContestant && s.phoneAFriend.Friend != nil {
			c.InfoText = StrContestantPhoneAFriendWait
		}
	}
	if s.phoneAFriend.HasResultsForQuestionIndex(s.hotSeatQuestionIndex) &&
		showLifelineResultsEvents[currentSocketEvent] {
		c.PhoneAFriendResults = s.phoneAFriend.GetResults()
	}

	if s.askTheAudience.HasResultsForQuestionIndex(s.hotSeatQuestionIndex) &&
		showLifelineResultsEvents[currentSocketEvent] {
		c.AskTheAudienceResults = s.askTheAudience.GetResults()
	}

	c.PlayerList = s.compressedPlayerList(
		c.ClientIsHotSeatPlayer && currentSocketEvent == eventHotSeatConfirmPhoneAFriend)
	c.HotSeatQuestionIndex = s.hotSeatQuestionIndex
	c.CelebrationBanner = s.celebrationBanner
	c.AudioCommand = s.audioCommand

	return c
}
