package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrNicknameTaken      = errors.New("nickname already taken")
	ErrInvalidNickname    = errors.New("invalid nickname (3-32 chars: letters, digits, '_' or '-')")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
)

var nicknameRegex = regexp.MustCompile(`^[a-z0-9_-]{3,32}$`)

const (
	MinPasswordLen = 8
	bcryptCost     = 12
)

// Player is the owner of one streak.
type Player struct {
	ID           string    `json:"id" db:"id"`
	Nickname     string    `json:"nickname" db:"nickname"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

func NormalizeNickname(nickname string) string {
	return strings.ToLower(strings.TrimSpace(nickname))
}

func NewPlayer(id, nickname string) (*Player, error) {
	nickname = NormalizeNickname(nickname)

	if !nicknameRegex.MatchString(nickname) {
		return nil, ErrInvalidNickname
	}

	now := time.Now().UTC()
	return &Player{
		ID:        id,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (p *Player) SetPassword(plainPassword string) error {
	if utf8.RuneCountInString(plainPassword) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcryptCost)
	if err != nil {
		return err
	}

	p.PasswordHash = string(hash)
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Player) CheckPassword(plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(plainPassword))
}
