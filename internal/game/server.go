package game

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"time"

	"github.com/ivahaev/timer"
)

// Config carries the timing knobs of a session. Zero values are replaced by
// DefaultConfig at construction.
type Config struct {
	// Auto-advance delay for step dialogs when no human holds the role.
	HostActionDelay time.Duration
	// Length of the three strikes audio cue before choices reveal.
	ThreeStrikesDelay time.Duration
	// How long fastest finger submissions stay open.
	FastestFingerWindow time.Duration
	// How long the audience vote stays open.
	AskTheAudienceWindow time.Duration
	// How long the AI friend pretends to think.
	AIThinkDelay time.Duration
	// Pause on a correct answer before the celebration banner.
	CelebrationDelay time.Duration
}

func DefaultConfig() Config {
	return Config{
		HostActionDelay:      8 * time.Second,
		ThreeStrikesDelay:    4 * time.Second,
		FastestFingerWindow:  10 * time.Second,
		AskTheAudienceWindow: 15 * time.Second,
		AIThinkDelay:         5 * time.Second,
		CelebrationDelay:     5 * time.Second,
	}
}

// Options are the round setup choices made by the room leader.
type Options struct {
	ShowHostUsername string
}

// GameServer drives one session through its event spine. It owns no lock:
// the enclosing room serializes HandleEvent calls, and timer callbacks
// re-enter through the injected dispatch function under the same lock.
type GameServer struct {
	playerMap *PlayerMap
	state     *ServerState

	cfg       Config
	rng       *rand.Rand
	log       *slog.Logger
	questions QuestionSource

	currentSocketEvent string
	currentForcedTimer *timer.Timer
	isSinglePlayerGame bool

	// Every armed timer carries a token issued here; liveTimers holds the
	// tokens still allowed to fire. A callback that lost its token between
	// firing and taking the room lock arrived after the session moved on
	// and must not replay the old transition.
	timerSeq    uint64
	liveTimers  map[uint64]bool
	forcedToken uint64

	// dispatch re-enters HandleTimedEvent with the firing timer's token.
	// The room replaces it with a variant that takes the room lock and
	// broadcasts afterwards.
	dispatch func(event string, token uint64)

	// onPayout is called whenever a player's money increases, for
	// persistence. May be nil.
	onPayout func(p *Player, amount int)

	// onGameStarted and onHotSeatWin feed the stats tables. May be nil.
	onGameStarted func(players []*Player)
	onHotSeatWin  func(p *Player)

	handlers map[string]func(p *Player, payload json.RawMessage)
}

func NewGameServer(playerMap *PlayerMap, cfg Config, rng *rand.Rand, log *slog.Logger, questions QuestionSource) *GameServer {
	def := DefaultConfig()
	if cfg.HostActionDelay <= 0 {
		cfg.HostActionDelay = def.HostActionDelay
	}
	if cfg.ThreeStrikesDelay <= 0 {
		cfg.ThreeStrikesDelay = def.ThreeStrikesDelay
	}
	if cfg.FastestFingerWindow <= 0 {
		cfg.FastestFingerWindow = def.FastestFingerWindow
	}
	if cfg.AskTheAudienceWindow <= 0 {
		cfg.AskTheAudienceWindow = def.AskTheAudienceWindow
	}
	if cfg.AIThinkDelay <= 0 {
		cfg.AIThinkDelay = def.AIThinkDelay
	}
	if cfg.CelebrationDelay <= 0 {
		cfg.CelebrationDelay = def.CelebrationDelay
	}

	s := &GameServer{
		playerMap:  playerMap,
		cfg:        cfg,
		rng:        rng,
		log:        log,
		questions:  questions,
		liveTimers: make(map[uint64]bool),
	}
	s.dispatch = func(event string, token uint64) { s.HandleTimedEvent(event, token) }
	s.handlers = map[string]func(*Player, json.RawMessage){
		eventShowHostShowFastestFingerRules:        s.showHostShowFastestFingerRules,
		eventShowHostCueFastestFingerQuestion:      s.showHostCueFastestFingerQuestion,
		eventShowHostShowFastestFingerQuestionText: s.showHostShowFastestFingerQuestionText,
		eventShowHostCueFastestFingerThreeStrikes:  s.showHostCueFastestFingerThreeStrikes,
		eventShowHostRevealFastestFingerChoices:    s.showHostRevealFastestFingerQuestionChoices,
		eventContestantFastestFingerChoose:         s.contestantFastestFingerChoose,
		eventFastestFingerTimeUp:                   s.fastestFingerTimeUp,
		eventShowHostCueFastestFingerAnswerReveal:  s.showHostCueFastestFingerAnswerRevealAudio,
		eventShowHostRevealFastestFingerAnswer:     s.showHostRevealFastestFingerAnswer,
		eventShowHostRevealFastestFingerResults:    s.showHostRevealFastestFingerResults,
		eventShowHostAcceptHotSeatPlayer:           s.showHostAcceptHotSeatPlayer,
		eventShowHostCueHotSeatRules:               s.showHostCueHotSeatRules,
		eventShowHostCueHotSeatQuestion:            s.showHostCueHotSeatQuestion,
		eventShowHostShowHotSeatQuestionText:       s.showHostShowHotSeatQuestionText,
		eventShowHostRevealHotSeatChoice:           s.showHostRevealHotSeatChoice,
		eventHotSeatChoose:                         s.hotSeatChoose,
		eventContestantChoose:                      s.contestantChoose,
		eventHotSeatFinalAnswer:                    s.hotSeatFinalAnswer,
		eventShowHostRevealHotSeatQuestionVictory:  s.showHostRevealHotSeatQuestionVictory,
		eventVictoryContinuation:                   s.showHostRevealHotSeatQuestionVictoryContinuation,
		eventShowHostRevealHotSeatQuestionLoss:     s.showHostRevealHotSeatQuestionLoss,
		eventShowHostSayGoodbyeToHotSeat:           s.showHostSayGoodbyeToHotSeat,
		eventHotSeatWalkAway:                       s.hotSeatWalkAway,
		eventHotSeatConfirmWalkAway:                s.hotSeatConfirmWalkAway,
		eventHotSeatUseFiftyFifty:                  s.hotSeatUseFiftyFifty,
		eventHotSeatConfirmFiftyFifty:              s.hotSeatConfirmFiftyFifty,
		eventHotSeatUsePhoneAFriend:                s.hotSeatUsePhoneAFriend,
		eventHotSeatConfirmPhoneAFriend:            s.hotSeatConfirmPhoneAFriend,
		eventHotSeatPickPhoneAFriend:               s.hotSeatPickPhoneAFriend,
		eventContestantSetPhoneConfidence:          s.contestantSetPhoneConfidence,
		eventHotSeatUseAskTheAudience:              s.hotSeatUseAskTheAudience,
		eventHotSeatConfirmAskTheAudience:          s.hotSeatConfirmAskTheAudience,
		eventShowHostStartAskTheAudience:           s.showHostStartAskTheAudience,
		eventFinishAskTheAudience:                  s.finishAskTheAudience,
	}
	return s
}

// SetDispatch replaces the internal event dispatcher. The room installs one
// that re-enters under the room lock and broadcasts the resulting state.
func (s *GameServer) SetDispatch(dispatch func(event string, token uint64)) {
	s.dispatch = dispatch
}

// SetPayoutHook installs the persistence callback for money awards.
func (s *GameServer) SetPayoutHook(onPayout func(p *Player, amount int)) {
	s.onPayout = onPayout
}

// SetStatsHooks installs the callbacks fired when a session begins and when
// the hot seat player answers the final question.
func (s *GameServer) SetStatsHooks(onGameStarted func(players []*Player), onHotSeatWin func(p *Player)) {
	s.onGameStarted = onGameStarted
	s.onHotSeatWin = onHotSeatWin
}

// State exposes the server state for snapshot building.
func (s *GameServer) State() *ServerState {
	return s.state
}

// CurrentSocketEvent is the event the session is parked on.
func (s *GameServer) CurrentSocketEvent() string {
	return s.currentSocketEvent
}

// InGame reports whether a session is running.
func (s *GameServer) InGame() bool {
	return s.state != nil
}

// OptionsAreValid rejects setups that cannot work, such as a show host in a
// room where nobody would be left to play.
func (s *GameServer) OptionsAreValid(options Options) bool {
	if options.ShowHostUsername != "" && s.playerMap.Count() < 2 {
		return false
	}
	return true
}

// StartGame begins a session. A lone player skips fastest finger and goes
// straight to the hot seat.
func (s *GameServer) StartGame(options Options) {
	s.state = NewServerState(s.playerMap, s.rng)
	if options.ShowHostUsername != "" {
		s.state.SetShowHostByUsername(options.ShowHostUsername)
	}
	s.isSinglePlayerGame = s.playerMap.CountExcludingShowHost() == 1

	if s.onGameStarted != nil {
		s.onGameStarted(s.playerMap.ListExcludingShowHost())
	}

	if s.isSinglePlayerGame {
		s.showHostCueHotSeatRules(nil, nil)
	} else {
		s.showHostShowFastestFingerRules(nil, nil)
	}
}

// EndGame tears the session down and cancels every pending timer.
func (s *GameServer) EndGame() {
	if s.state != nil {
		s.state.ClearTimers()
	}
	s.clearForcedTimer()
	s.liveTimers = make(map[uint64]bool)
	s.state = nil
	s.currentSocketEvent = ""
}

// HandleTimedEvent runs one timer-fired event. The token was issued when the
// timer was armed; if the session has since cleared or superseded that timer
// the callback is stale and gets dropped. Each token fires at most once.
func (s *GameServer) HandleTimedEvent(event string, token uint64) {
	if s.state == nil || !s.liveTimers[token] {
		s.log.Debug("stale timer dropped", "event", event)
		return
	}
	delete(s.liveTimers, token)
	s.HandleEvent(nil, event, nil)
}

// HandleEvent runs one event against the session. Unknown, out-of-phase and
// unauthorized events are ignored without reply. A nil player marks an
// internally fired event, which is always authorized.
func (s *GameServer) HandleEvent(p *Player, event string, payload json.RawMessage) {
	if s.state == nil {
		return
	}
	handler, ok := s.handlers[event]
	if !ok {
		return
	}
	if !s.eventAllowed(p, event) {
		username := ""
		if p != nil {
			username = p.Username
		}
		s.log.Debug("game event ignored", "event", event, "username", username)
		return
	}
	s.log.Debug("game event", "event", event, "phase", s.currentSocketEvent)
	handler(p, payload)
}

// Events only ever fired by internal timers.
var internalOnlyEvents = stringSet(
	eventShowHostRevealFastestFingerChoices,
	eventFastestFingerTimeUp,
	eventVictoryContinuation,
	eventFinishAskTheAudience,
)

// eventAllowed decides whether a sender may fire an event right now. Step
// dialog options belong to whichever role holds the dialog; free events are
// gated by role and phase.
func (s *GameServer) eventAllowed(p *Player, event string) bool {
	if p == nil {
		return true
	}
	if internalOnlyEvents[event] {
		return false
	}

	if d := s.state.showHostStepDialog; d != nil && dialogHasAction(d, event) {
		return s.state.PlayerIsShowHost(p)
	}
	if d := s.state.hotSeatStepDialog; d != nil && dialogHasAction(d, event) {
		return s.state.PlayerIsHotSeatPlayer(p)
	}

	switch event {
	case eventContestantFastestFingerChoose:
		return !p.IsShowHost && fastestFingerChoosableEvents[s.currentSocketEvent]
	case eventHotSeatChoose:
		return s.state.PlayerIsHotSeatPlayer(p) && s.state.HotSeatPlayerCanChoose(s.currentSocketEvent)
	case eventContestantChoose:
		return s.state.PlayerIsContestant(p) &&
			(s.state.ContestantCanChoose(s.currentSocketEvent) ||
				s.state.phoneAFriend.WaitingForChoiceFromPlayer(p))
	case eventHotSeatWalkAway, eventHotSeatUseFiftyFifty,
		eventHotSeatUsePhoneAFriend, eventHotSeatUseAskTheAudience:
		return s.state.PlayerIsHotSeatPlayer(p) && s.state.HotSeatPlayerCanChoose(s.currentSocketEvent)
	case eventHotSeatPickPhoneAFriend:
		return s.state.PlayerIsHotSeatPlayer(p) &&
			s.currentSocketEvent == eventHotSeatConfirmPhoneAFriend
	case eventContestantSetPhoneConfidence:
		return s.state.phoneAFriend.WaitingForConfidenceFromPlayer(p)
	}
	return false
}

func dialogHasAction(d *StepDialog, event string) bool {
	for _, a := range d.Actions {
		if a.SocketEvent == event {
			return true
		}
	}
	return false
}

// HELPERS

// setShowHostDialog prompts the host; with no human host the dialog arms an
// auto-fire timer instead.
func (s *GameServer) setShowHostDialog(actions []StepDialogAction, header string) {
	s.resetStepDialogs()
	if s.state.ShowHostPresent() {
		s.state.SetShowHostStepDialog(NewStepDialog(actions, header))
	} else {
		s.state.SetShowHostStepDialog(NewTimedStepDialog(
			actions, header, s.cfg.HostActionDelay, s.issueTimerToken(), s.dispatch))
	}
}

// setConfirmDialog raises a yes/no prompt. The host reads it out when
// present; otherwise the hot seat player answers for themselves. These wait
// on a human, so they never time out.
func (s *GameServer) setConfirmDialog(actions []StepDialogAction, header string) {
	s.resetStepDialogs()
	d := NewStepDialog(actions, header)
	if s.state.ShowHostPresent() {
		s.state.SetShowHostStepDialog(d)
	} else {
		s.state.SetHotSeatStepDialog(d)
	}
}

func (s *GameServer) resetStepDialogs() {
	s.retireDialog(s.state.showHostStepDialog)
	s.retireDialog(s.state.hotSeatStepDialog)
	s.state.SetShowHostStepDialog(nil)
	s.state.SetHotSeatStepDialog(nil)
}

// retireDialog stops a dialog's auto-fire and revokes its token, so a fire
// already waiting on the room lock lands dead.
func (s *GameServer) retireDialog(d *StepDialog) {
	if d == nil {
		return
	}
	d.ClearTimeout()
	delete(s.liveTimers, d.fireToken)
}

func (s *GameServer) issueTimerToken() uint64 {
	s.timerSeq++
	s.liveTimers[s.timerSeq] = true
	return s.timerSeq
}

func (s *GameServer) armForcedTimer(delay time.Duration, event string) {
	s.clearForcedTimer()
	token := s.issueTimerToken()
	s.forcedToken = token
	t := timer.AfterFunc(delay, func() { s.dispatch(event, token) })
	t.Start()
	s.currentForcedTimer = t
}

func (s *GameServer) clearForcedTimer() {
	if s.currentForcedTimer != nil {
		s.currentForcedTimer.Stop()
		s.currentForcedTimer = nil
		delete(s.liveTimers, s.forcedToken)
	}
}

func (s *GameServer) playMusic(src string, volume float64, loop bool) {
	if s.state == nil {
		return
	}
	s.state.audioCommand = &AudioCommand{MusicSrc: src, Loop: loop, Volume: volume}
}

func (s *GameServer) playSoundEffect(src string, volume float64, stopPreviousSounds bool) {
	if s.state == nil {
		return
	}
	s.state.audioCommand = &AudioCommand{
		FxSrc:              src,
		StopPreviousSounds: stopPreviousSounds,
		Volume:             volume,
	}
}

func (s *GameServer) awardMoney(p *Player, amount int) {
	if p == nil || amount <= 0 {
		return
	}
	p.Money += amount
	if s.onPayout != nil {
		s.onPayout(p, amount)
	}
}

// FASTEST FINGER HANDLERS

func (s *GameServer) showHostShowFastestFingerRules(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostShowFastestFingerRules
	s.state.ClearEphemeralFields()

	s.state.showHostInfoText = StrShowHostFastestFingerRules
	s.state.contestantInfoText = StrContestantFastestFingerRules
	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostCueFastestFingerQuestion,
		Text:        StrCueFastestFingerMusic,
	}}, "")
}

func (s *GameServer) showHostCueFastestFingerQuestion(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostCueFastestFingerQuestion
	s.resetStepDialogs()
	s.state.StartNewRound(false)
	s.state.ClearEphemeralFields()

	s.playMusic(MusicFastestFinger, 1.0, true)
	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostShowFastestFingerQuestionText,
		Text:        StrShowFastestFingerQuestion,
	}}, "")
}

func (s *GameServer) showHostShowFastestFingerQuestionText(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostShowFastestFingerQuestionText
	s.state.ClearEphemeralFields()

	content, err := s.questions.FastestFinger(context.Background())
	if err != nil {
		s.log.Error("fastest finger question fetch failed", "error", err)
		return
	}
	s.state.fastestFingerQuestion = NewFastestFingerQuestion(content, s.playerMap, s.rng)

	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostCueFastestFingerThreeStrikes,
		Text:        StrRevealFastestFingerChoice,
	}}, "")
}

func (s *GameServer) showHostCueFastestFingerThreeStrikes(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostCueFastestFingerThreeStrikes
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	s.playSoundEffect(SfxThreeStrikes, 1.0, true)
	s.armForcedTimer(s.cfg.ThreeStrikesDelay, eventShowHostRevealFastestFingerChoices)
}

func (s *GameServer) showHostRevealFastestFingerQuestionChoices(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostRevealFastestFingerChoices
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	if s.state.fastestFingerQuestion == nil {
		return
	}
	s.state.fastestFingerQuestion.RevealAllChoices()
	s.state.fastestFingerQuestion.MarkStartTime()
	s.armForcedTimer(s.cfg.FastestFingerWindow, eventFastestFingerTimeUp)
}

func (s *GameServer) contestantFastestFingerChoose(p *Player, payload json.RawMessage) {
	if p == nil || s.state.fastestFingerQuestion == nil {
		return
	}
	var data ChoicePayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return
	}

	p.ChooseFastestFinger(data.Choice)
	if s.state.fastestFingerQuestion.AllPlayersDone() {
		s.fastestFingerTimeUp(nil, nil)
	}
}

func (s *GameServer) fastestFingerTimeUp(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventFastestFingerTimeUp
	s.state.ClearEphemeralFields()
	s.clearForcedTimer()

	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostCueFastestFingerAnswerReveal,
		Text:        StrCueFastestFingerAnswerReveal,
	}}, "")
}

func (s *GameServer) showHostCueFastestFingerAnswerRevealAudio(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostCueFastestFingerAnswerReveal
	s.state.ClearEphemeralFields()

	s.playMusic(MusicFastestFingerReveal, 1.0, false)
	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostRevealFastestFingerAnswer,
		Text:        StrRevealFastestFingerAnswer,
	}}, "")
}

func (s *GameServer) showHostRevealFastestFingerAnswer(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostRevealFastestFingerAnswer
	s.state.ClearEphemeralFields()

	if s.state.fastestFingerQuestion == nil {
		return
	}
	s.state.fastestFingerQuestion.RevealAnswer()

	if s.state.fastestFingerQuestion.AllAnswersRevealed() {
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostRevealFastestFingerResults,
			Text:        StrRevealFastestFingerResults,
		}}, "")
	} else {
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostRevealFastestFingerAnswer,
			Text:        StrRevealFastestFingerAnswer,
		}}, "")
	}
}

func (s *GameServer) showHostRevealFastestFingerResults(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostRevealFastestFingerResults
	s.state.ClearEphemeralFields()

	// Score once and seat the winner here; snapshots only read the cached
	// results.
	if s.state.fastestFingerQuestion != nil {
		results := s.state.fastestFingerQuestion.GetResults()
		s.state.fastestFingerResults = &results
		if results.HotSeatPlayer != nil {
			s.state.SetHotSeatPlayerByUsername(results.HotSeatPlayer.Username)
		}
	}

	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostAcceptHotSeatPlayer,
		Text:        StrAcceptHotSeatPlayer,
	}}, "")
}

func (s *GameServer) showHostAcceptHotSeatPlayer(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostAcceptHotSeatPlayer
	s.state.ClearEphemeralFields()

	if s.state.hotSeatPlayer != nil {
		s.state.SetCelebrationBanner(&CelebrationBanner{
			Header: StrFastestFingerWinner,
			Text:   s.state.hotSeatPlayer.Username,
		})
	}

	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostCueHotSeatRules,
		Text:        StrShowHotSeatRules,
	}}, "")
}

// HOT SEAT HANDLERS

func (s *GameServer) showHostCueHotSeatRules(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostCueHotSeatRules

	if s.isSinglePlayerGame {
		s.resetStepDialogs()
		s.state.StartNewRound(true)
		if s.state.hotSeatPlayer == nil {
			if contestants := s.playerMap.ListExcludingShowHost(); len(contestants) > 0 {
				s.state.SetHotSeatPlayerByUsername(contestants[0].Username)
			}
		}
	}
	s.state.ClearEphemeralFields()
	s.state.ResetFastestFinger()
	s.state.SetCelebrationBanner(nil)

	s.playMusic(MusicHotSeatBackground, 0.7, true)
	s.state.showHostInfoText = StrShowHostRules
	s.state.hotSeatInfoText = StrHotSeatRules
	s.state.contestantInfoText = StrContestantRules
	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostCueHotSeatQuestion,
		Text:        StrCueHotSeatQuestion,
	}}, "")
}

func (s *GameServer) showHostCueHotSeatQuestion(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostCueHotSeatQuestion
	s.state.ClearEphemeralFields()
	s.state.SetCelebrationBanner(nil)
	s.state.hotSeatQuestionIndex++

	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostShowHotSeatQuestionText,
		Text:        StrShowHotSeatQuestion,
	}}, "")
}

func (s *GameServer) showHostShowHotSeatQuestionText(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostShowHotSeatQuestionText
	s.state.ClearEphemeralFields()

	content, err := s.questions.HotSeat(context.Background(), s.state.hotSeatQuestionIndex)
	if err != nil {
		s.log.Error("hot seat question fetch failed",
			"index", s.state.hotSeatQuestionIndex, "error", err)
		return
	}
	s.state.hotSeatQuestion = NewHotSeatQuestion(
		content, s.state.hotSeatQuestionIndex, s.playerMap, s.rng)

	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostRevealHotSeatChoice,
		Text:        StrRevealHotSeatChoice,
	}}, "")
}

func (s *GameServer) showHostRevealHotSeatChoice(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostRevealHotSeatChoice
	s.state.ClearEphemeralFields()

	if s.state.hotSeatQuestion == nil {
		return
	}
	s.state.hotSeatQuestion.RevealChoice()

	if s.state.hotSeatQuestion.AllChoicesRevealed() {
		// All choices on screen; the game now waits on the hot seat player.
		s.resetStepDialogs()
	} else {
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostRevealHotSeatChoice,
			Text:        StrRevealHotSeatChoice,
		}}, "")
	}
}

func (s *GameServer) hotSeatChoose(p *Player, payload json.RawMessage) {
	if p == nil || s.state.hotSeatQuestion == nil {
		return
	}
	var data ChoicePayload
	if err := json.Unmarshal(payload, &data); err != nil || !data.Choice.Valid() {
		return
	}
	s.currentSocketEvent = eventHotSeatChoose
	s.state.ClearEphemeralFields()

	p.ChooseHotSeat(data.Choice)
	s.state.hotSeatQuestion.Grader.HotSeatPlayerChoice = p.HotSeatChoice

	s.setConfirmDialog([]StepDialogAction{{
		SocketEvent: eventHotSeatFinalAnswer,
		Text:        StrYes,
	}, {
		SocketEvent: eventShowHostRevealHotSeatChoice,
		Text:        StrNo,
	}}, StrHotSeatFinalAnswer)
}

func (s *GameServer) contestantChoose(p *Player, payload json.RawMessage) {
	if p == nil {
		return
	}
	var data ChoicePayload
	if err := json.Unmarshal(payload, &data); err != nil || !data.Choice.Valid() {
		return
	}

	p.ChooseHotSeat(data.Choice)
	if s.state.phoneAFriend.WaitingForChoiceFromPlayer(p) {
		s.state.phoneAFriend.SetFriendChoice(data.Choice)
	}
	if s.currentSocketEvent == eventShowHostStartAskTheAudience &&
		!s.state.askTheAudience.WaitingForContestants() {
		s.finishAskTheAudience(nil, nil)
	}
}

func (s *GameServer) hotSeatFinalAnswer(p *Player, _ json.RawMessage) {
	if s.state.hotSeatQuestion == nil || s.state.hotSeatPlayer == nil ||
		s.state.hotSeatPlayer.HotSeatChoice == nil {
		return
	}
	s.currentSocketEvent = eventHotSeatFinalAnswer
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	s.state.hotSeatQuestion.CorrectChoiceRevealedForShowHost = true
	s.playSoundEffect(SfxFinalAnswer, 1.0, true)

	if s.state.hotSeatQuestion.AnswerIsCorrect(*s.state.hotSeatPlayer.HotSeatChoice) {
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostRevealHotSeatQuestionVictory,
			Text:        StrHotSeatVictory,
		}}, "")
	} else {
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostRevealHotSeatQuestionLoss,
			Text:        StrHotSeatLoss,
		}}, "")
	}
}

func (s *GameServer) showHostRevealHotSeatQuestionVictory(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostRevealHotSeatQuestionVictory
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	if s.state.hotSeatQuestion == nil {
		return
	}
	s.state.hotSeatQuestion.CorrectChoiceRevealedForAll = true
	s.gradeHotSeatQuestion()

	s.playSoundEffect(SfxVictory, 1.0, true)
	s.armForcedTimer(s.cfg.CelebrationDelay, eventVictoryContinuation)
}

func (s *GameServer) showHostRevealHotSeatQuestionVictoryContinuation(p *Player, _ json.RawMessage) {
	s.state.ClearEphemeralFields()
	s.clearForcedTimer()

	s.state.SetCelebrationBanner(&CelebrationBanner{
		Header: "",
		Text:   MoneyStringForIndex(s.state.hotSeatQuestionIndex),
	})
	s.state.ResetHotSeatQuestion()

	if s.state.hotSeatQuestionIndex >= len(Payouts)-1 {
		if s.onHotSeatWin != nil && s.state.hotSeatPlayer != nil {
			s.onHotSeatWin(s.state.hotSeatPlayer)
		}
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostSayGoodbyeToHotSeat,
			Text:        StrSayGoodbye,
		}}, "")
	} else {
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostCueHotSeatQuestion,
			Text:        StrCueHotSeatQuestion,
		}}, "")
	}
}

func (s *GameServer) showHostRevealHotSeatQuestionLoss(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostRevealHotSeatQuestionLoss
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	if s.state.hotSeatQuestion == nil {
		return
	}
	s.state.hotSeatQuestion.CorrectChoiceRevealedForAll = true
	s.gradeHotSeatQuestion()

	s.state.hotSeatQuestionIndex = SafeHavenIndex(s.state.hotSeatQuestionIndex)
	s.playSoundEffect(SfxLoss, 1.0, true)
	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostSayGoodbyeToHotSeat,
		Text:        StrSayGoodbye,
	}}, "")
}

func (s *GameServer) showHostSayGoodbyeToHotSeat(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostSayGoodbyeToHotSeat
	s.state.ClearEphemeralFields()

	bannerText := "$0"
	if s.state.hotSeatQuestionIndex >= 0 {
		bannerText = MoneyStringForIndex(s.state.hotSeatQuestionIndex)
		s.awardMoney(s.state.hotSeatPlayer, PayoutForIndex(s.state.hotSeatQuestionIndex))
	}
	s.state.SetCelebrationBanner(&CelebrationBanner{
		Header: StrTotalWinnings,
		Text:   bannerText,
	})
	s.state.ResetHotSeatQuestion()

	if s.isSinglePlayerGame {
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostCueHotSeatRules,
			Text:        StrStartNewRound,
		}}, "")
	} else {
		s.setShowHostDialog([]StepDialogAction{{
			SocketEvent: eventShowHostCueFastestFingerQuestion,
			Text:        StrStartNewRound,
		}}, "")
	}
}

// WALK AWAY

func (s *GameServer) hotSeatWalkAway(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventHotSeatWalkAway
	s.state.ClearEphemeralFields()

	s.setConfirmDialog([]StepDialogAction{{
		SocketEvent: eventHotSeatConfirmWalkAway,
		Text:        StrYes,
	}, {
		SocketEvent: eventShowHostRevealHotSeatChoice,
		Text:        StrNo,
	}}, StrHotSeatConfirmWalkAway)
}

func (s *GameServer) hotSeatConfirmWalkAway(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventHotSeatConfirmWalkAway
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	if s.state.hotSeatQuestion == nil {
		return
	}
	s.state.hotSeatQuestion.Grader.WalkingAway = true
	s.state.hotSeatQuestion.CorrectChoiceRevealedForAll = true
	s.gradeHotSeatQuestion()

	s.state.hotSeatQuestionIndex = SafeHavenIndex(s.state.hotSeatQuestionIndex)
	s.playSoundEffect(SfxWalkAway, 1.0, true)
	s.showHostSayGoodbyeToHotSeat(nil, nil)
}

// LIFELINE HANDLERS

func (s *GameServer) hotSeatUseFiftyFifty(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventHotSeatUseFiftyFifty
	s.state.ClearEphemeralFields()

	s.setConfirmDialog([]StepDialogAction{{
		SocketEvent: eventHotSeatConfirmFiftyFifty,
		Text:        StrYes,
	}, {
		SocketEvent: eventShowHostRevealHotSeatChoice,
		Text:        StrNo,
	}}, StrHotSeatConfirmFiftyFifty)
}

func (s *GameServer) hotSeatConfirmFiftyFifty(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventHotSeatConfirmFiftyFifty
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	if s.state.hotSeatQuestion == nil {
		return
	}
	s.state.fiftyFifty.Activate(s.state.hotSeatQuestion)
	s.showHostRevealHotSeatChoice(nil, nil)
}

func (s *GameServer) hotSeatUsePhoneAFriend(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventHotSeatUsePhoneAFriend
	s.state.ClearEphemeralFields()

	s.setConfirmDialog([]StepDialogAction{{
		SocketEvent: eventHotSeatConfirmPhoneAFriend,
		Text:        StrYes,
	}, {
		SocketEvent: eventShowHostRevealHotSeatChoice,
		Text:        StrNo,
	}}, StrHotSeatConfirmPhoneAFriend)
}

func (s *GameServer) hotSeatConfirmPhoneAFriend(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventHotSeatConfirmPhoneAFriend
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	if s.state.hotSeatQuestion == nil {
		return
	}
	s.state.phoneAFriend.StartForQuestion(s.state.hotSeatQuestion)

	if s.playerMap.CountExcludingShowHost() <= 1 {
		// Nobody to phone; ring the AI friend after a beat.
		s.state.showHostInfoText = StrHotSeatPhoneAFriendRulesAI
		s.state.hotSeatInfoText = StrHotSeatPhoneAFriendRulesAI
		s.armForcedTimer(s.cfg.AIThinkDelay, eventHotSeatPickPhoneAFriend)
	} else {
		s.state.showHostInfoText = StrShowHostPhoneAFriendRules
		s.state.hotSeatInfoText = StrHotSeatPhoneAFriendRules
		s.state.contestantInfoText = StrContestantPhoneAFriendRules
	}
}

func (s *GameServer) hotSeatPickPhoneAFriend(p *Player, payload json.RawMessage) {
	var data UsernamePayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &data); err != nil {
			return
		}
	}
	s.currentSocketEvent = eventHotSeatPickPhoneAFriend
	s.state.ClearEphemeralFields()
	s.clearForcedTimer()

	friend := s.playerMap.GetByUsername(data.Username)
	useAI := data.UseAI || friend == nil || !friend.IsContestant()

	if useAI {
		s.state.phoneAFriend.PickAIFriend()
		s.state.showHostInfoText = StrHotSeatPhoneAFriendChoosingAI
		s.state.hotSeatInfoText = StrHotSeatPhoneAFriendChoosingAI
		s.armForcedTimer(s.cfg.AIThinkDelay, eventShowHostRevealHotSeatChoice)
		return
	}

	s.state.phoneAFriend.PickFriend(friend)
	if friend.HotSeatChoice != nil {
		// The friend answered earlier; only their confidence is missing.
		s.state.phoneAFriend.SetFriendChoice(*friend.HotSeatChoice)
	}
	s.state.showHostInfoText = StrShowHostPhoneAFriendChoosing
	s.state.hotSeatInfoText = StrHotSeatPhoneAFriendChoosing
	s.state.contestantInfoText = StrContestantPhoneAFriendChoosing
}

func (s *GameServer) contestantSetPhoneConfidence(p *Player, payload json.RawMessage) {
	var data ConfidencePayload
	if err := json.Unmarshal(payload, &data); err != nil {
		return
	}

	s.state.phoneAFriend.SetFriendConfidence(data.Confidence)
	s.showHostRevealHotSeatChoice(nil, nil)
}

func (s *GameServer) hotSeatUseAskTheAudience(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventHotSeatUseAskTheAudience
	s.state.ClearEphemeralFields()

	s.setConfirmDialog([]StepDialogAction{{
		SocketEvent: eventHotSeatConfirmAskTheAudience,
		Text:        StrYes,
	}, {
		SocketEvent: eventShowHostRevealHotSeatChoice,
		Text:        StrNo,
	}}, StrHotSeatConfirmAskTheAudience)
}

func (s *GameServer) hotSeatConfirmAskTheAudience(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventHotSeatConfirmAskTheAudience
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	if s.state.hotSeatQuestion == nil {
		return
	}
	s.state.askTheAudience.StartForQuestion(s.state.hotSeatQuestion)

	s.state.showHostInfoText = StrShowHostAskTheAudienceInterlude
	s.state.hotSeatInfoText = StrHotSeatAskTheAudienceInterlude
	s.state.contestantInfoText = StrContestantAskTheAudienceInterlude
	s.setShowHostDialog([]StepDialogAction{{
		SocketEvent: eventShowHostStartAskTheAudience,
		Text:        StrShowHostStartAskTheAudience,
	}}, "")
}

func (s *GameServer) showHostStartAskTheAudience(p *Player, _ json.RawMessage) {
	s.currentSocketEvent = eventShowHostStartAskTheAudience
	s.state.ClearEphemeralFields()
	s.resetStepDialogs()

	s.playMusic(MusicAskTheAudience, 1.0, true)
	s.state.showHostInfoText = StrHotSeatAskTheAudienceVote
	s.state.hotSeatInfoText = StrHotSeatAskTheAudienceVote
	s.state.contestantInfoText = StrContestantAskTheAudienceVote
	s.armForcedTimer(s.cfg.AskTheAudienceWindow, eventFinishAskTheAudience)
}

func (s *GameServer) finishAskTheAudience(p *Player, _ json.RawMessage) {
	s.clearForcedTimer()
	s.state.askTheAudience.PopulateAllAnswerBuckets()
	s.showHostRevealHotSeatChoice(nil, nil)
}

// gradeHotSeatQuestion pays contestants for the finished question and clears
// their answers on the board.
func (s *GameServer) gradeHotSeatQuestion() {
	if s.state.hotSeatQuestion == nil {
		return
	}
	before := make(map[string]int, s.playerMap.Count())
	s.playerMap.Do(func(pl *Player) { before[pl.Username] = pl.Money })

	s.state.hotSeatQuestion.Grader.Grade()

	if s.onPayout != nil {
		s.playerMap.Do(func(pl *Player) {
			if gain := pl.Money - before[pl.Username]; gain > 0 {
				s.onPayout(pl, gain)
			}
		})
	}
}
