package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-transcribe/instrument"
	"github.com/cwbudde/algo-transcribe/transcribe"
	"github.com/cwbudde/algo-transcribe/transcribe/key"
	"github.com/cwbudde/algo-transcribe/transcribe/pitchtrack"
	"github.com/cwbudde/algo-transcribe/transcribe/quantize"
	"github.com/cwbudde/algo-transcribe/transcribe/transpose"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transcription pipeline over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

var serveCatalog *instrument.Catalog

type transcribeRequest struct {
	Frames       []frameJSON `json:"frames"`
	TempoBPM     float64     `json:"tempoBpm"`
	Strength     *float64    `json:"strength,omitempty"`
	MinDuration  *float64    `json:"minDuration,omitempty"`
	InstrumentID string      `json:"instrumentId,omitempty"`
	WrittenPitch bool        `json:"writtenPitch,omitempty"`
}

type transcribeResponse struct {
	ID         string     `json:"id"`
	Key        string     `json:"key"`
	Instrument string     `json:"instrument,omitempty"`
	Clef       string     `json:"clef,omitempty"`
	Notes      []noteJSON `json:"notes"`
}

func handleTranscribe(w http.ResponseWriter, r *http.Request) {
	var input transcribeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "could not decode request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	tempo := quantize.TempoContext{
		BPM:   input.TempoBPM,
		Meter: quantize.Meter{Numerator: 4, Denominator: 4},
	}
	opts := []transcribe.Option{}
	if input.Strength != nil {
		opts = append(opts, transcribe.WithStrength(*input.Strength))
	}
	if input.MinDuration != nil {
		opts = append(opts, transcribe.WithMinNoteDuration(*input.MinDuration))
	}

	track := framesToTrack(input.Frames)
	res, err := transcribe.Run(nil, track, tempo, opts...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := transcribeResponse{
		ID:  uuid.New().String(),
		Key: key.Detect(res.Pitches()).Name,
	}

	notes := res.Notes
	if input.InstrumentID != "" {
		inst, ok := serveCatalog.Get(input.InstrumentID)
		if !ok {
			http.Error(w, "unknown instrument: "+input.InstrumentID, http.StatusBadRequest)
			return
		}
		out.Instrument = inst.ID
		out.Clef = serveCatalog.PreferredClefForPitch(inst.ID, int(track.AverageMIDI()+0.5))
		if input.WrittenPitch {
			notes = transpose.NotesToWritten(notes, inst.TranspositionSemitones)
		}
	}

	out.Notes = make([]noteJSON, 0, len(notes))
	for _, n := range notes {
		out.Notes = append(out.Notes, noteJSON{
			Start:         n.Start,
			Duration:      n.Duration,
			StartBeat:     n.StartBeat,
			DurationBeats: n.DurationBeats,
			Pitch:         n.Pitch,
			NoteName:      pitchtrack.NoteName(n.Pitch),
			Confidence:    n.Confidence,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func handleInstruments(w http.ResponseWriter, r *http.Request) {
	list := serveCatalog.All()
	if family := r.URL.Query().Get("family"); family != "" {
		list = serveCatalog.ByFamily(family)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func serve() {
	catalog, err := instrument.Load()
	if err != nil {
		log.Fatal(err)
	}
	serveCatalog = catalog

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/transcribe", handleTranscribe).Methods("POST")
	router.HandleFunc("/instruments", handleInstruments).Methods("GET")

	handler := cors.Default().Handler(router)
	log.Printf("listening on %s", serveAddr)
	log.Fatal(http.ListenAndServe(serveAddr, handler))
}
