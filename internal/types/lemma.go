package types

import (
	"time"
)

// Lemma is a dictionary headword keyed by a caller-assigned or derived
// integer id.
type Lemma struct {
	LemmaID        int64     `gorm:"primaryKey;autoIncrement:false;column:lemma_id" json:"lemma_id"`
	LemmaText      string    `gorm:"not null;column:lemma_text" json:"lemma_text"`
	LemmaTextClean string    `gorm:"index;not null;column:lemma_text_clean" json:"lemma_text_clean"`
	WordsCount     *int      `gorm:"column:words_count" json:"words_count"`
	UniqWordsCount *int      `gorm:"column:uniq_words_count" json:"uniq_words_count"`
	PrimaryUToken  *string   `gorm:"column:primary_ar_u_token" json:"primary_ar_u_token"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (Lemma) TableName() string { return "quran_ayah_lemmas" }

// LemmaLocation pins a lemma to one word position in the corpus.
type LemmaLocation struct {
	LemmaID       int64     `gorm:"primaryKey;autoIncrement:false;column:lemma_id" json:"lemma_id"`
	WordLocation  string    `gorm:"primaryKey;column:word_location" json:"word_location"`
	Surah         int       `gorm:"not null;column:surah" json:"surah"`
	Ayah          int       `gorm:"not null;column:ayah" json:"ayah"`
	TokenIndex    int       `gorm:"not null;column:token_index" json:"token_index"`
	TokenOccID    *string   `gorm:"column:ar_token_occ_id" json:"ar_token_occ_id"`
	UTokenID      *string   `gorm:"column:ar_u_token" json:"ar_u_token"`
	WordSimple    *string   `gorm:"column:word_simple" json:"word_simple"`
	WordDiacritic *string   `gorm:"column:word_diacritic" json:"word_diacritic"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (LemmaLocation) TableName() string { return "quran_ayah_lemma_location" }
