package headlessterm

// NotificationPayload carries a desktop notification request (OSC 9, OSC 99,
// or OSC 777). Fields beyond PayloadType/Data are iTerm2 OSC 99 metadata
// ("c=...:d=1:e=1:p=50:...") and are left zero when the request came in via
// OSC 9; OSC 777 additionally fills AppName.
type NotificationPayload struct {
	ID          string
	Done        bool
	PayloadType string // "title", "body", or "?" (query); OSC 9/777 messages use "body"
	Encoding    string
	Actions     []string
	TrackClose  bool
	Timeout     int
	AppName     string
	Type        string
	IconName    string
	IconCacheID string
	Sound       string
	Urgency     int
	Occasion    string
	Data        []byte
}

// NotificationProvider handles desktop notification requests.
// Notify may return a response string to be written back to the pty
// (used for OSC 99 query requests); an empty string means no response.
type NotificationProvider interface {
	Notify(payload *NotificationPayload) string
}

// NoopNotification discards all notifications.
type NoopNotification struct{}

func (NoopNotification) Notify(payload *NotificationPayload) string { return "" }

var _ NotificationProvider = NoopNotification{}

// DesktopNotification dispatches a notification request to the configured
// NotificationProvider, honoring middleware interception.
func (t *Terminal) DesktopNotification(payload *NotificationPayload) {
	if t.middleware != nil && t.middleware.DesktopNotification != nil {
		t.middleware.DesktopNotification(payload, t.desktopNotificationInternal)
		return
	}
	t.desktopNotificationInternal(payload)
}

func (t *Terminal) desktopNotificationInternal(payload *NotificationPayload) {
	t.mu.RLock()
	provider := t.notificationProvider
	t.mu.RUnlock()

	if provider == nil {
		return
	}

	var response string
	t.guardProvider("NotificationProvider.Notify", func() {
		response = provider.Notify(payload)
	})
	if response != "" {
		t.writeResponseString(response)
	}
}

// SetNotificationProvider sets the notification provider at runtime.
func (t *Terminal) SetNotificationProvider(p NotificationProvider) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notificationProvider = p
}

// NotificationProvider returns the current notification provider.
func (t *Terminal) NotificationProvider() NotificationProvider {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.notificationProvider
}

// SetUserVar sets a named user variable (OSC 1337 SetUserVar), honoring
// middleware interception.
func (t *Terminal) SetUserVar(name, value string) {
	if t.middleware != nil && t.middleware.SetUserVar != nil {
		t.middleware.SetUserVar(name, value, t.setUserVarInternal)
		return
	}
	t.setUserVarInternal(name, value)
}

func (t *Terminal) setUserVarInternal(name, value string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.userVars[name] = value
	t.events.Push(Event{Kind: EventUserVarChanged, VarName: name, VarValue: value})
}

// GetUserVar returns the value of a user variable, or "" if unset.
func (t *Terminal) GetUserVar(name string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.userVars[name]
}

// GetUserVars returns a copy of all user variables.
func (t *Terminal) GetUserVars() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	vars := make(map[string]string, len(t.userVars))
	for k, v := range t.userVars {
		vars[k] = v
	}
	return vars
}

// ClearUserVars removes all user variables.
func (t *Terminal) ClearUserVars() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.userVars = make(map[string]string)
}
