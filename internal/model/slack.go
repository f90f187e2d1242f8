package model

// Envelope is the decoded form of one inbound Slack request.
// The set of variants is closed: SlashCommand, Shortcut, ViewSubmission,
// AppEvent and BlockAction.
type Envelope interface {
	// Kind names the variant, e.g. "slash_command".
	Kind() string
	// RouteKey is the value the router matches on for this variant.
	RouteKey() string

	envelope()
}

// SlashCommand represents a slash command invocation
type SlashCommand struct {
	Command     string // e.g. /echo
	Text        string
	TriggerID   string
	UserID      string
	ChannelID   string
	ResponseURL string
}

// Shortcut represents a global or message shortcut
type Shortcut struct {
	CallbackID string
	TriggerID  string
	UserID     string
}

// ViewSubmission represents a submitted modal.
// Values maps block id to action id to the submitted value.
type ViewSubmission struct {
	CallbackID      string
	TriggerID       string // optional
	UserID          string
	PrivateMetadata string
	Values          map[string]map[string]string
}

// AppEvent represents an Events API callback
type AppEvent struct {
	EventType string // e.g. app_home_opened
	UserID    string
	Tab       string
}

// BlockAction represents an interactive component action (e.g. a button click)
type BlockAction struct {
	ActionID  string
	BlockID   string
	TriggerID string
	UserID    string
}

func (SlashCommand) Kind() string   { return "slash_command" }
func (Shortcut) Kind() string       { return "shortcut" }
func (ViewSubmission) Kind() string { return "view_submission" }
func (AppEvent) Kind() string       { return "event" }
func (BlockAction) Kind() string    { return "block_actions" }

func (e SlashCommand) RouteKey() string   { return e.Command }
func (e Shortcut) RouteKey() string       { return e.CallbackID }
func (e ViewSubmission) RouteKey() string { return e.CallbackID }
func (e AppEvent) RouteKey() string       { return e.EventType }
func (e BlockAction) RouteKey() string    { return e.ActionID }

func (SlashCommand) envelope()   {}
func (Shortcut) envelope()       {}
func (ViewSubmission) envelope() {}
func (AppEvent) envelope()       {}
func (BlockAction) envelope()    {}

// Value returns the submitted value of the given block and action.
func (s ViewSubmission) Value(blockID, actionID string) (string, bool) {
	actions, ok := s.Values[blockID]
	if !ok {
		return "", false
	}
	v, ok := actions[actionID]
	return v, ok
}
