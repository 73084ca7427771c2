package promoter

import (
	"errors"
	"time"
)

type Promoter struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	PasswordHash   string     `json:"-"`
	Admin          bool       `json:"admin"`
	Active         bool       `json:"active"`
	Approved       bool       `json:"approved"`
	RegistrationIP string     `json:"registrationIp,omitempty"`
	LastSeenAt     *time.Time `json:"lastSeenAt,omitempty"`
	ApprovedAt     *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy     string     `json:"approvedBy,omitempty"`
	Location       string     `json:"location,omitempty"`
	ChannelChatID  string     `json:"channelChatId,omitempty"`
	AvatarURL      string     `json:"avatarUrl,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type BlockedIP struct {
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

type State string

const (
	StatePending     State = "pending"
	StateActive      State = "active"
	StateDeactivated State = "deactivated"
)

var (
	ErrNotFound         = errors.New("пользователь не найден")
	ErrEmailTaken       = errors.New("пользователь с таким email уже существует")
	ErrIPBlocked        = errors.New("регистрация с этого адреса запрещена")
	ErrAwaitingApproval = errors.New("аккаунт ожидает подтверждения")
	ErrDeactivated      = errors.New("аккаунт деактивирован")
	ErrWrongPassword    = errors.New("неверный email или пароль")
	ErrNoChannelBinding = errors.New("не настроен канал для кода подтверждения")
	ErrBadCode          = errors.New("неверный или просроченный код")
	ErrAdminAccount     = errors.New("нельзя изменить статус администратора")
	ErrNotApproved      = errors.New("аккаунт ещё не подтверждён")
)

// StateOf derives the tri-valued lifecycle state from the two flags. Admins
// are always active regardless of the flags.
func StateOf(p Promoter) State {
	if p.Admin {
		return StateActive
	}
	if !p.Approved {
		return StatePending
	}
	if !p.Active {
		return StateDeactivated
	}
	return StateActive
}

// LoginGate decides whether a promoter may log in, with the specific error
// each non-active state receives.
func LoginGate(p Promoter) error {
	switch StateOf(p) {
	case StatePending:
		return ErrAwaitingApproval
	case StateDeactivated:
		return ErrDeactivated
	}
	return nil
}
