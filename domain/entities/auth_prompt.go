package entities

// AuthPrompt represents a prompt-response pair during login
type AuthPrompt struct {
	WaitFor string // prompt to wait for
	SendCmd string // line to send (empty means just wait)
	Secret  bool   // keep SendCmd out of debug logs
}

// LoginFailureHints are device messages meaning the credentials were refused.
var LoginFailureHints = []string{
	"% Authentication failed",
	"% Login invalid",
	"% Bad passwords",
	"Login incorrect",
	"Access denied",
}
