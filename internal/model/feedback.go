package model

import "time"

// Sentiment is the overall tone a manager assigns to a feedback record.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Feedback is a review record a manager writes about a direct report.
// ManagerID and EmployeeID are fixed at creation; only the content
// fields and the acknowledged flag change afterwards.
type Feedback struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ManagerID      uint      `json:"manager_id" gorm:"not null;index"`
	EmployeeID     uint      `json:"employee_id" gorm:"not null;index"`
	Strengths      string    `json:"strengths" gorm:"type:text;not null"`
	AreasToImprove string    `json:"areas_to_improve" gorm:"type:text;not null"`
	Sentiment      Sentiment `json:"sentiment" gorm:"type:varchar(20);not null"`
	Acknowledged   bool      `json:"acknowledged" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Manager  *User `json:"-" gorm:"foreignKey:ManagerID"`
	Employee *User `json:"-" gorm:"foreignKey:EmployeeID"`
}

// TableName sets the table name for GORM.
func (Feedback) TableName() string {
	return "feedback"
}
