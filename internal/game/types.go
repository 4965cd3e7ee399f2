package game

import "encoding/json"

// Envelope is the websocket frame: an event name plus a type-specific payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewEnvelope marshals payload and wraps it. Marshal failures are programmer
// errors on our own types, so they surface as an empty payload.
func NewEnvelope(eventType string, payload any) Envelope {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = nil
	}
	return Envelope{Type: eventType, Payload: raw}
}

// QuestionView is the redacted question a single viewer receives. Choice
// slots appear only as they are revealed, and the correct slot only once that
// viewer's reveal flag is set.
type QuestionView struct {
	Text              string   `json:"text"`
	RevealedChoices   []string `json:"revealedChoices"`
	MadeChoices       []Choice `json:"madeChoices,omitempty"`
	MadeChoice        *Choice  `json:"madeChoice,omitempty"`
	CorrectChoice     *Choice  `json:"correctChoice,omitempty"`
	EliminatedChoices []Choice `json:"eliminatedChoices,omitempty"`
}

// CompressedPlayer is one row of the public player list.
type CompressedPlayer struct {
	Username    string `json:"username"`
	Money       int    `json:"money"`
	IsShowHost  bool   `json:"isShowHost"`
	IsHotSeat   bool   `json:"isHotSeatPlayer"`
	ClickAction string `json:"clickAction,omitempty"`
}

// ActionButton is a lifeline or walk away control on the hot seat screen.
type ActionButton struct {
	Used        bool   `json:"used"`
	SocketEvent string `json:"socketEvent"`
	Available   bool   `json:"available"`
}

// CelebrationBanner is the full-screen money banner after a correct answer or
// during the goodbye sequence.
type CelebrationBanner struct {
	Header string `json:"header"`
	Text   string `json:"text"`
}

// ClientState is one viewer's complete snapshot of the session. Every field
// is already redacted for that viewer; the client renders it verbatim.
type ClientState struct {
	ClientIsShowHost      bool `json:"clientIsShowHost"`
	ClientIsHotSeatPlayer bool `json:"clientIsHotSeatPlayer"`
	ClientIsContestant    bool `json:"clientIsContestant"`

	ShowHostStepDialog *CompressedStepDialog `json:"showHostStepDialog,omitempty"`
	HotSeatStepDialog  *CompressedStepDialog `json:"hotSeatStepDialog,omitempty"`

	InfoText     string `json:"infoText,omitempty"`
	ChoiceAction string `json:"choiceAction,omitempty"`

	Question             *QuestionView `json:"question,omitempty"`
	HotSeatQuestionIndex int           `json:"hotSeatQuestionIndex"`

	FastestFingerRevealedAnswers []RevealedAnswer      `json:"fastestFingerRevealedAnswers,omitempty"`
	FastestFingerResults         []FastestFingerResult `json:"fastestFingerResults,omitempty"`
	FastestFingerBestScore       int                   `json:"fastestFingerBestScore,omitempty"`

	WalkAwayActionButton       *ActionButton `json:"walkAwayActionButton,omitempty"`
	FiftyFiftyActionButton     *ActionButton `json:"fiftyFiftyActionButton,omitempty"`
	PhoneAFriendActionButton   *ActionButton `json:"phoneAFriendActionButton,omitempty"`
	AskTheAudienceActionButton *ActionButton `json:"askTheAudienceActionButton,omitempty"`

	ShowPhoneConfidenceMeter bool                   `json:"showPhoneConfidenceMeter,omitempty"`
	PhoneAFriendResults      *PhoneAFriendResults   `json:"phoneAFriendResults,omitempty"`
	AskTheAudienceResults    *AskTheAudienceResults `json:"askTheAudienceResults,omitempty"`

	PlayerList        []CompressedPlayer `json:"playerList"`
	CelebrationBanner *CelebrationBanner `json:"celebrationBanner,omitempty"`
	AudioCommand      *AudioCommand      `json:"audioCommand,omitempty"`
}

// Inbound payloads.

// ChoicePayload carries a single answer slot pick.
type ChoicePayload struct {
	Choice Choice `json:"choice"`
}

// UsernamePayload names another player, or selects the AI stand-in.
type UsernamePayload struct {
	Username string `json:"username"`
	UseAI    bool   `json:"useAI,omitempty"`
}

// ConfidencePayload carries the phoned friend's confidence in [0,1].
type ConfidencePayload struct {
	Confidence float64 `json:"confidence"`
}

// CreateRoomPayload opens a new room.
type CreateRoomPayload struct {
	Username string `json:"username"`
}

// JoinRoomPayload joins an existing room by code.
type JoinRoomPayload struct {
	Username string `json:"username"`
	RoomCode string `json:"roomCode"`
}

// StartGamePayload carries the room leader's setup choices.
type StartGamePayload struct {
	PlayShowHost bool `json:"playShowHost"`
}

// Outbound lobby payloads.

// RoomStatePayload acknowledges creation or join and describes the lobby.
type RoomStatePayload struct {
	Username   string             `json:"username"`
	RoomCode   string             `json:"roomCode"`
	IsLeader   bool               `json:"isLeader"`
	PlayerList []CompressedPlayer `json:"playerList"`
	InGame     bool               `json:"inGame"`
}

// FailurePayload explains a rejected lobby attempt.
type FailurePayload struct {
	Reason string `json:"reason"`
}
