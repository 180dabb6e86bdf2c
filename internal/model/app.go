package model

// Флаги токенов приложений
const (
	FlagShowPlaces = "show-places"
)

// AppToken токен стороннего приложения
type AppToken struct {
	Code   string   `json:"code"`
	Issued int64    `json:"issued"`
	Flags  []string `json:"flags"`
	Active bool     `json:"active"`
}

// HasFlag проверяет что токен активен и содержит флаг
func (t AppToken) HasFlag(flag string) bool {
	if !t.Active {
		return false
	}
	for _, f := range t.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// App стороннее приложение с набором токенов
type App struct {
	Code   string     `json:"code"`
	Name   string     `json:"name"`
	Icon   string     `json:"icon,omitempty"`
	Owner  string     `json:"owner,omitempty"`
	Tokens []AppToken `json:"tokens"`
}

// Token возвращает токен приложения по коду
func (a *App) Token(code string) (AppToken, bool) {
	for _, t := range a.Tokens {
		if t.Code == code {
			return t, true
		}
	}
	return AppToken{}, false
}
