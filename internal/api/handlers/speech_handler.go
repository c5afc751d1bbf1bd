package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/lexilearn-be/internal/speech"
	"github.com/rs/zerolog/log"
)

// SpeechHandler passes requests through to the local speech engines.
type SpeechHandler struct {
	speaker     speech.Speaker
	transcriber speech.Transcriber
}

// NewSpeechHandler creates a new SpeechHandler.
func NewSpeechHandler(speaker speech.Speaker, transcriber speech.Transcriber) *SpeechHandler {
	return &SpeechHandler{speaker: speaker, transcriber: transcriber}
}

// TextToSpeech speaks the supplied text and waits for playback to finish.
func (h *SpeechHandler) TextToSpeech(identityID string, w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := decodeBody(r, &payload); err != nil || payload.Text == "" {
		respondMessage(w, http.StatusBadRequest, "Text parameter is required")
		return
	}

	if err := h.speaker.Speak(r.Context(), payload.Text); err != nil {
		log.Error().Err(err).Str("user_id", identityID).Msg("TTS failed")
		respondMessage(w, http.StatusInternalServerError, "TTS Error: "+err.Error())
		return
	}
	respondMessage(w, http.StatusOK, "Text spoken successfully")
}

// SpeechToText captures one utterance. Any failure is reported as 204.
func (h *SpeechHandler) SpeechToText(identityID string, w http.ResponseWriter, r *http.Request) {
	transcript, err := h.transcriber.Transcribe(r.Context())
	if err != nil {
		if !errors.Is(err, speech.ErrNoSpeech) {
			log.Warn().Err(err).Str("user_id", identityID).Msg("STT failed")
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"transcript": transcript})
}
