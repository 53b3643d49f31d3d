package secondary

// Notifier defines the secondary port for user-facing notifications.
type Notifier interface {
	Success(message string)
	Danger(message string)
}

// Translator defines the secondary port for localized strings.
type Translator interface {
	// T returns the message for key in the active locale.
	T(key string) string
}

// Slugifier derives a URL-safe identifier from free text.
type Slugifier interface {
	Slugify(text string) string
}

// TokenGenerator produces a fresh, globally unique token per call.
type TokenGenerator interface {
	NewToken() string
}
