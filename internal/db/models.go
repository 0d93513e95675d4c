package db

import "time"

// TranslationFault maps translation_faults: one row per failed translation call.
type TranslationFault struct {
	FaultID        int64     `gorm:"column:fault_id;primaryKey;autoIncrement" json:"fault_id"`
	TranslatorID   string    `gorm:"column:translator_id;type:text;not null;index" json:"translator_id"`
	TranslatorName string    `gorm:"column:translator_name;type:text;not null" json:"translator_name"`
	Classified     bool      `gorm:"column:classified;type:boolean;not null;default:false;index" json:"classified"`
	DisplayMessage *string   `gorm:"column:display_message;type:text" json:"display_message,omitempty"`
	ErrorType      string    `gorm:"column:error_type;type:text;not null" json:"error_type"`
	ErrorText      string    `gorm:"column:error_text;type:text;not null" json:"error_text"`
	SourceLang     string    `gorm:"column:source_lang;type:text;not null;default:''" json:"source_lang"`
	TargetLang     string    `gorm:"column:target_lang;type:text;not null;default:''" json:"target_lang"`
	TextLength     int       `gorm:"column:text_length;type:integer;not null;default:0" json:"text_length"`
	RequestID      *string   `gorm:"column:request_id;type:text" json:"request_id,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now();index" json:"created_at"`
}

func (TranslationFault) TableName() string { return "translation_faults" }
