package profile

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Profile carries per-user presentation preferences. Every account
// gets one the moment it exists.
type Profile struct {
	UserID int64
	Theme  string
}

func Default(userID int64) *Profile {
	return &Profile{UserID: userID, Theme: ThemeLight}
}
