package model

import (
	"time"

	"github.com/balajikutalagari/Akshaya-Loan-Management/internal/domain/valueobject"
)

// Member is a society member record.
type Member struct {
	ID       string `json:"id"`
	MemberID string `json:"memberId"` // human-readable, e.g. MEM-00007

	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`

	Status     valueobject.MemberStatus `json:"status"`
	JoinedDate time.Time                `json:"joinedDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
