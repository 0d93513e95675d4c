package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"horse.fit/translate/internal/db"
	"horse.fit/translate/internal/language"
	"horse.fit/translate/internal/translation"
)

const (
	defaultFaultLimit = 50
	maxFaultLimit     = 500
)

// genericTranslateFailure is shown for faults without a user-facing description.
const genericTranslateFailure = "Translation failed, please try again later"

type translatorItem struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	ContentLengthLimit int               `json:"content_length_limit"`
	DefaultTarget      language.Language `json:"default_target"`
	Default            bool              `json:"default"`
}

func (s *Server) handleTranslators(c echo.Context) error {
	defaultID := s.translators.DefaultTranslator()
	items := make([]translatorItem, 0, len(s.translators.TranslatorIDs()))
	for _, id := range s.translators.TranslatorIDs() {
		translator, err := s.translators.Translator(id)
		if err != nil {
			s.logger.Error().Err(err).Str("translator_id", id).Msg("resolve registered translator failed")
			return internalError(c, "Failed to load translators")
		}
		items = append(items, translatorItem{
			ID:                 translator.ID(),
			Name:               translator.Name(),
			ContentLengthLimit: translator.ContentLengthLimit(),
			DefaultTarget:      translator.DefaultLanguageForLocale(),
			Default:            translator.ID() == defaultID,
		})
	}
	return success(c, map[string]any{
		"items": items,
	})
}

func (s *Server) handleTranslatorLanguages(c echo.Context) error {
	translator, err := s.translators.Translator(c.Param("translator_id"))
	if err != nil {
		if errors.Is(err, translation.ErrTranslatorNotFound) {
			return failNotFound(c, "Translator not found")
		}
		s.logger.Error().Err(err).Msg("resolve translator failed")
		return internalError(c, "Failed to load languages")
	}

	return success(c, map[string]any{
		"translator_id": translator.ID(),
		"source":        translation.SourceLanguageOptions(translator),
		"target":        translation.TargetLanguageOptions(translator),
	})
}

func (s *Server) handleTranslate(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return failValidation(c, map[string]string{"body": "could not read request body"})
	}

	payload, err := decodeTranslatePayload(raw)
	if err != nil {
		var invalid *payloadError
		if errors.As(err, &invalid) {
			return failValidation(c, invalid.fields)
		}
		s.logger.Error().Err(err).Msg("decode translate payload failed")
		return internalError(c, "Failed to read translate request")
	}

	fieldErrors := map[string]string{}
	source, err := translation.ResolveLanguage(payload.Source)
	if err != nil {
		fieldErrors["source"] = "is not a supported language code"
	}
	target, err := translation.ResolveLanguage(payload.Target)
	if err != nil {
		fieldErrors["target"] = "is not a supported language code"
	} else if target.IsAuto() {
		fieldErrors["target"] = "cannot be auto"
	}
	translator, err := s.translators.Translator(payload.Translator)
	if err != nil {
		if !errors.Is(err, translation.ErrTranslatorNotFound) {
			s.logger.Error().Err(err).Msg("resolve translator failed")
			return internalError(c, "Failed to resolve translator")
		}
		fieldErrors["translator"] = "is not a registered translator"
	}
	if len(fieldErrors) > 0 {
		return failValidation(c, fieldErrors)
	}

	req := translation.TranslateRequest{
		Text:   payload.Text,
		Source: source,
		Target: target,
	}
	result, err := translator.Translate(c.Request().Context(), req)
	if err != nil {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		// The ledger write outlives a cancelled or timed-out request.
		s.recorder.Record(context.WithoutCancel(c.Request().Context()), translator, req, err, requestID)

		var translateErr *translation.TranslateError
		if errors.As(err, &translateErr) {
			return fail(c, http.StatusUnprocessableEntity, translateErr.Info.Message, map[string]any{
				"translator_id":   translateErr.TranslatorID,
				"translator_name": translateErr.TranslatorName,
			})
		}
		return internalError(c, genericTranslateFailure)
	}

	return success(c, map[string]any{
		"translation": result,
	})
}

func (s *Server) handleFaults(c echo.Context) error {
	if s.faults == nil {
		return fail(c, http.StatusServiceUnavailable, "Fault ledger is not configured", nil)
	}

	limit, err := parsePositiveInt(c.QueryParam("limit"), defaultFaultLimit, 1, maxFaultLimit)
	if err != nil {
		return failValidation(c, map[string]string{"limit": err.Error()})
	}

	filter := db.FaultFilter{
		TranslatorID: c.QueryParam("translator"),
		Limit:        limit,
	}
	if raw := strings.TrimSpace(c.QueryParam("classified")); raw != "" {
		classified, parseErr := strconv.ParseBool(raw)
		if parseErr != nil {
			return failValidation(c, map[string]string{"classified": "must be true or false"})
		}
		filter.Classified = &classified
	}

	rows, err := s.faults.ListRecentFaults(c.Request().Context(), filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("query translation faults failed")
		return internalError(c, "Failed to load faults")
	}
	return success(c, map[string]any{
		"items": rows,
	})
}
