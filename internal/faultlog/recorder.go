// Package faultlog logs failed translations and, when a database is
// configured, persists them to the fault ledger.
package faultlog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"horse.fit/translate/internal/db"
	"horse.fit/translate/internal/translation"
)

type Store interface {
	RecordFault(ctx context.Context, row *db.TranslationFault) error
}

type Recorder struct {
	store  Store
	logger zerolog.Logger
}

// NewRecorder returns a recorder; a nil store only logs.
func NewRecorder(store Store, logger zerolog.Logger) *Recorder {
	return &Recorder{store: store, logger: logger}
}

// Record logs err at warn when it is a *translation.TranslateError, at error
// otherwise, then persists it. Persistence failures are logged, not returned.
func (r *Recorder) Record(
	ctx context.Context,
	translator *translation.Translator,
	req translation.TranslateRequest,
	err error,
	requestID string,
) {
	if r == nil || err == nil {
		return
	}

	row := NewFaultRow(translator, req, err)
	if requestID = strings.TrimSpace(requestID); requestID != "" {
		row.RequestID = &requestID
	}

	var event *zerolog.Event
	msg := "translation failed"
	if row.Classified {
		event = r.logger.Warn().Str("display_message", *row.DisplayMessage)
	} else {
		event = r.logger.Error()
		msg = "translation failed with unclassified fault"
	}
	event.
		Err(err).
		Str("translator_id", row.TranslatorID).
		Str("error_type", row.ErrorType).
		Str("source_lang", row.SourceLang).
		Str("target_lang", row.TargetLang).
		Int("text_length", row.TextLength).
		Str("request_id", requestID).
		Msg(msg)

	if r.store == nil {
		return
	}
	if storeErr := r.store.RecordFault(ctx, row); storeErr != nil {
		r.logger.Error().Err(storeErr).Str("translator_id", row.TranslatorID).Msg("record translation fault failed")
	}
}

// NewFaultRow describes err as a ledger row. The error type is the type of
// the original fault, not of the wrapper.
func NewFaultRow(translator *translation.Translator, req translation.TranslateRequest, err error) *db.TranslationFault {
	row := &db.TranslationFault{
		SourceLang: req.Source.Code,
		TargetLang: req.Target.Code,
		TextLength: utf8.RuneCountInString(req.Text),
		ErrorType:  fmt.Sprintf("%T", err),
		ErrorText:  err.Error(),
	}
	if translator != nil {
		row.TranslatorID = translator.ID()
		row.TranslatorName = translator.Name()
	}

	var translateErr *translation.TranslateError
	if errors.As(err, &translateErr) {
		message := translateErr.Info.Message
		row.Classified = true
		row.DisplayMessage = &message
		row.TranslatorID = translateErr.TranslatorID
		row.TranslatorName = translateErr.TranslatorName
		if translateErr.Cause != nil {
			row.ErrorType = fmt.Sprintf("%T", translateErr.Cause)
		}
	}
	return row
}
