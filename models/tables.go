package models

import "time"

type User struct {
	ID           int    `gorm:"primary_key;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"` // json:"-" prevents password from being exposed in API
}

type BlogPost struct {
	ID          int        `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"not null;index" json:"slug"` // computed once at creation, never recomputed
	Content     string     `gorm:"type:text" json:"content"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	ImageURL    *string    `json:"imageUrl"`
	IsPublished bool       `gorm:"default:false;index" json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt"` // set on first publish only
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Review struct {
	ID           int       `gorm:"primary_key;autoIncrement" json:"id"`
	CustomerName string    `gorm:"not null" json:"customerName"`
	Rating       int       `gorm:"not null" json:"rating"`
	Comment      string    `gorm:"type:text;not null" json:"comment"`
	ImageURL     *string   `json:"imageUrl"` // plain URL supplied by the client, not a managed upload
	IsPublished  bool      `gorm:"default:true" json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Vehicle struct {
	ID          int       `gorm:"primary_key;autoIncrement" json:"id"`
	Class       string    `gorm:"not null;index" json:"class"`
	Brand       string    `gorm:"not null" json:"brand"`
	Model       string    `gorm:"not null" json:"model"`
	Year        int       `gorm:"not null" json:"year"`
	Seats       int       `gorm:"not null" json:"seats"`
	Description *string   `gorm:"type:text" json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Amenities   *string   `json:"amenities"` // opaque comma-delimited string, split by the UI
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Benefit struct {
	ID          int    `gorm:"primary_key;autoIncrement" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	Icon        string `gorm:"not null" json:"icon"`
	Order       int    `gorm:"column:display_order;not null;index" json:"order"`
}

// BenefitStats is a singleton row (ID always 1) holding the display counters
// shown next to the benefits section.
type BenefitStats struct {
	ID         int    `gorm:"primary_key" json:"id"`
	Clients    string `gorm:"not null" json:"clients"`
	Directions string `gorm:"not null" json:"directions"`
	Experience string `gorm:"not null" json:"experience"`
	Support    string `gorm:"not null" json:"support"`
}

// SiteSettings is a singleton row (ID always 1) with the company contact block.
type SiteSettings struct {
	ID            int       `gorm:"primary_key" json:"id"`
	Phone         string    `gorm:"not null" json:"phone"`
	Email         string    `gorm:"not null" json:"email"`
	Address       string    `json:"address"`
	WorkingHours  string    `json:"workingHours"`
	CompanyName   string    `gorm:"not null" json:"companyName"`
	CompanyDesc   string    `gorm:"type:text" json:"companyDesc"`
	InstagramLink string    `json:"instagramLink"`
	TelegramLink  string    `json:"telegramLink"`
	WhatsappLink  string    `json:"whatsappLink"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
