package constant

// Conversation turn roles, matching the completion provider's wire roles.
const (
	ChatRoleSystem    = "system"
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
)

// Post-processing actions a chat request may select. At most one is applied.
const (
	ChatActionPersonalize = "personalize"
	ChatActionTranslate   = "translate"
	ChatActionExplainCode = "explain_code"
)
