package member

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/liff-attendance-go/internal/domain/sheet"
)

const (
	DefaultRange        = "userLine!A:G"
	DefaultHistoryRange = "history!A:E"
)

// Member is a LINE user registered in the userLine sheet.
type Member struct {
	CreatedAt   string `json:"created_at"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	DisplayName string `json:"displayName"`
	UserID      string `json:"userId"`
	Note        string `json:"note"`
	UserRole    string `json:"userRole"`
}

func (m Member) Cells() []string {
	return []string{m.CreatedAt, m.Name, m.Phone, m.DisplayName, m.UserID, m.Note, m.UserRole}
}

// Bill is one service bill of a member.
type Bill struct {
	BillDate       string `json:"bill_date"`
	CarPlateNumber string `json:"car_plate_number"`
	TotalAmount    string `json:"bill_total_amount"`
	Detail         string `json:"bill_detail"`
	UserID         string `json:"userId"`
}

func Parse(records []sheet.Record) []Member {
	members := make([]Member, 0, len(records))
	for _, r := range records {
		members = append(members, Member{
			CreatedAt:   r.Get("created_at"),
			Name:        r.Get("name"),
			Phone:       r.Get("phone"),
			DisplayName: r.Get("displayName"),
			UserID:      r.Get("userId"),
			Note:        r.Get("note"),
			UserRole:    r.Get("userRole"),
		})
	}
	return members
}

func ParseBills(records []sheet.Record) []Bill {
	bills := make([]Bill, 0, len(records))
	for _, r := range records {
		bills = append(bills, Bill{
			BillDate:       r.Get("bill_date"),
			CarPlateNumber: r.Get("car_plate_number"),
			TotalAmount:    r.Get("bill_total_amount"),
			Detail:         r.Get("bill_detail"),
			UserID:         r.Get("userId"),
		})
	}
	return bills
}

func FindByUserID(members []Member, userID string) (Member, error) {
	if userID == "" {
		return Member{}, ErrMemberNotFound
	}
	for _, m := range members {
		if m.UserID == userID {
			return m, nil
		}
	}
	return Member{}, ErrMemberNotFound
}

func PhoneTaken(members []Member, phone string) bool {
	for _, m := range members {
		if m.Phone == phone {
			return true
		}
	}
	return false
}

var billDateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02 15:04:05", "1/2/2006"}

func parseBillDate(s string) (time.Time, bool) {
	for _, layout := range billDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BillsOf returns the user's bills, newest first. Undated bills go last.
func BillsOf(bills []Bill, userID string) []Bill {
	own := make([]Bill, 0)
	for _, b := range bills {
		if b.UserID == userID {
			own = append(own, b)
		}
	}
	sort.SliceStable(own, func(i, j int) bool {
		a, aok := parseBillDate(own[i].BillDate)
		b, bok := parseBillDate(own[j].BillDate)
		if aok != bok {
			return aok
		}
		return aok && a.After(b)
	})
	return own
}
