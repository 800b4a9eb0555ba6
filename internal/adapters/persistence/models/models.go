package models

import (
	"time"
)

// Account roles
const (
	RoleAdmin       = "Admin"
	RoleOfficial    = "Official"
	RoleCorpsMember = "Corps Member"
	RolePCM         = "PCM"
)

// News categories
const (
	NewsMobilization = "Mobilization"
	NewsGuide        = "Guide"
	NewsOfficial     = "Official"
	NewsGeneral      = "General"
)

// Clearance statuses
const (
	ClearancePending  = "Pending"
	ClearanceApproved = "Approved"
	ClearanceRejected = "Rejected"
)

// User represents the users table
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
	Name     string `gorm:"size:100;not null" json:"name"`
	Role     string `gorm:"size:20;default:'Corps Member'" json:"role"`

	// Optional profile attributes. Free-text by design: mobilization and
	// pass-out dates arrive as display labels, not structured timestamps.
	State            string `gorm:"size:50" json:"state"`
	Gender           string `gorm:"size:10" json:"gender"`
	Phone            string `gorm:"size:20" json:"phone"`
	StateCode        string `gorm:"size:20" json:"state_code"`
	MobilizationDate string `gorm:"size:50" json:"mobilization_date"`
	PopDate          string `gorm:"size:50" json:"pop_date"`
	CDSGroup         string `gorm:"size:100" json:"cds_group"`
	LGA              string `gorm:"size:100" json:"lga"`
	Address          string `gorm:"size:255" json:"address"`
	ResidenceState   string `gorm:"size:50" json:"residence_state"`
	ResidenceLGA     string `gorm:"size:100" json:"residence_lga"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// IsOfficial reports whether the account may act as a reviewer
func (u *User) IsOfficial() bool {
	return u.Role == RoleOfficial || u.Role == RoleAdmin
}

// UserResponse DTO returned by auth endpoints
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	State     string `json:"state"`
	StateCode string `json:"state_code,omitempty"`
	Token     string `json:"token,omitempty"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		State:     u.State,
		StateCode: u.StateCode,
	}
}

// News represents the news table. Title carries a unique index so the
// ingestion job can rely on the store for duplicate suppression.
type News struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"uniqueIndex;size:255;not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Date      string    `gorm:"size:50" json:"date"`
	Type      string    `gorm:"size:20;default:'General'" json:"type"`
	URL       string    `gorm:"size:500" json:"url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (News) TableName() string {
	return "news"
}

// Resource represents the resources table
type Resource struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Category  string    `gorm:"size:50" json:"category"`
	URL       string    `gorm:"size:500" json:"url"`
	DateAdded string    `gorm:"size:50" json:"date_added"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}

func (Resource) TableName() string {
	return "resources"
}

// Clearance represents the clearances table. The composite unique index on
// (user_id, month) makes one-request-per-month a store-level invariant
// rather than a racy pre-insert check.
type Clearance struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"uniqueIndex:idx_user_month;not null" json:"user_id"`
	UserName        string    `gorm:"size:100" json:"user_name"`
	StateCode       string    `gorm:"size:20" json:"state_code"`
	Month           string    `gorm:"uniqueIndex:idx_user_month;size:50;not null" json:"month"`
	DateSubmitted   string    `gorm:"size:50" json:"date_submitted"`
	Status          string    `gorm:"size:20;default:'Pending'" json:"status"`
	FileURL         *string   `gorm:"size:500" json:"file_url"`
	OfficialComment *string   `gorm:"size:500" json:"official_comment"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Clearance) TableName() string {
	return "clearances"
}

// IsPending reports whether the request is still awaiting review
func (c *Clearance) IsPending() bool {
	return c.Status == ClearancePending
}
