package qrtoken

import (
	"encoding/json"
	"fmt"
	"time"
)

// Token adalah QR presensi yang sedang aktif untuk satu tampilan.
type Token struct {
	Value      string    `json:"value"`
	IssuedAt   time.Time `json:"issued_at"`
	TTLSeconds int       `json:"ttl_seconds"`
}

// Stale reports whether the token's validity window has elapsed at now.
func (t Token) Stale(now time.Time) bool {
	return !now.Before(t.IssuedAt.Add(time.Duration(t.TTLSeconds) * time.Second))
}

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
	PhaseBackoff
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	case PhaseBackoff:
		return "backoff"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// FailureKind classifies a failed issuance.
type FailureKind string

const (
	FailureNetwork      FailureKind = "network"
	FailureUnauthorized FailureKind = "unauthorized"
	FailureRateLimited  FailureKind = "rate_limited"
	FailureServer       FailureKind = "server"
)

// State is the controller's tagged variant. Token and SecondsRemaining are
// only meaningful in PhaseReady, SecondsRemaining also in PhaseBackoff, and
// Reason only in PhaseError.
type State struct {
	Phase            Phase
	Token            *Token
	SecondsRemaining int
	Reason           FailureKind
}

func (s State) String() string {
	switch s.Phase {
	case PhaseReady:
		return fmt.Sprintf("ready(%ds)", s.SecondsRemaining)
	case PhaseBackoff:
		return fmt.Sprintf("backoff(%ds)", s.SecondsRemaining)
	case PhaseError:
		return fmt.Sprintf("error(%s)", s.Reason)
	}
	return s.Phase.String()
}

type stateJSON struct {
	Phase            string      `json:"phase"`
	Token            string      `json:"token,omitempty"`
	IssuedAt         *time.Time  `json:"issued_at,omitempty"`
	TTLSeconds       int         `json:"ttl_seconds,omitempty"`
	SecondsRemaining *int        `json:"seconds_remaining,omitempty"`
	Reason           FailureKind `json:"reason,omitempty"`
}

func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{Phase: s.Phase.String()}
	switch s.Phase {
	case PhaseReady:
		if s.Token != nil {
			issued := s.Token.IssuedAt
			out.Token = s.Token.Value
			out.IssuedAt = &issued
			out.TTLSeconds = s.Token.TTLSeconds
		}
		remaining := s.SecondsRemaining
		out.SecondsRemaining = &remaining
	case PhaseBackoff:
		remaining := s.SecondsRemaining
		out.SecondsRemaining = &remaining
	case PhaseError:
		out.Reason = s.Reason
	}
	return json.Marshal(out)
}

type NoticeLevel string

const (
	LevelError   NoticeLevel = "error"
	LevelWarning NoticeLevel = "warning"
)

// Notice is a transient, user-facing message.
type Notice struct {
	Level   NoticeLevel `json:"level"`
	Kind    FailureKind `json:"kind,omitempty"`
	Message string      `json:"message"`
}

const (
	MsgSessionExpired = "Sesi anda telah berakhir. Silakan login kembali."
	MsgRateLimited    = "Terlalu banyak permintaan. Mohon tunggu sebentar."
	MsgServerError    = "Gagal memuat QR Code. Silakan coba lagi."
	MsgNetworkError   = "Terjadi kesalahan jaringan."
	msgWaitFormat     = "Mohon tunggu %d detik sebelum mencoba lagi."
)

func failureNotice(kind FailureKind) Notice {
	n := Notice{Level: LevelError, Kind: kind}
	switch kind {
	case FailureUnauthorized:
		n.Message = MsgSessionExpired
	case FailureRateLimited:
		n.Level = LevelWarning
		n.Message = MsgRateLimited
	case FailureNetwork:
		n.Message = MsgNetworkError
	default:
		n.Message = MsgServerError
	}
	return n
}
