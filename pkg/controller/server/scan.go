package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/scanbook/scanbook/pkg/domain/interfaces"
	"github.com/scanbook/scanbook/pkg/domain/model"
	"github.com/scanbook/scanbook/pkg/domain/types"
)

type triggerScanRequest struct {
	Target   string         `json:"target"`
	ScanType types.ScanType `json:"scanType"`
}

func handleTriggerScan(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromCtx(r.Context())
		if !ok {
			respondError(w, r, "trigger scan without identity", types.ErrUnauthenticated)
			return
		}

		var req triggerScanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, r, "decode scan request",
				goerr.Wrap(types.ErrValidationFailed, "invalid request body"))
			return
		}

		scan, err := uc.TriggerScan(r.Context(), &model.TriggerScanInput{
			UserID:   userID,
			Target:   req.Target,
			ScanType: req.ScanType,
		})
		if err != nil {
			respondError(w, r, "fail to trigger scan", err)
			return
		}

		respondJSON(w, http.StatusCreated, scan)
	}
}

func handleListScans(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromCtx(r.Context())
		if !ok {
			respondError(w, r, "list scans without identity", types.ErrUnauthenticated)
			return
		}

		digests, err := uc.ListScans(r.Context(), userID)
		if err != nil {
			respondError(w, r, "fail to list scans", err)
			return
		}
		if digests == nil {
			digests = []*model.ScanDigest{}
		}

		respondJSON(w, http.StatusOK, digests)
	}
}

type reportResponse struct {
	MarkdownReport string `json:"markdownReport"`
}

func handleGetReport(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromCtx(r.Context())
		if !ok {
			respondError(w, r, "get report without identity", types.ErrUnauthenticated)
			return
		}

		scanID := types.ScanID(chi.URLParam(r, "scanID"))
		scan, err := uc.GetScanReport(r.Context(), userID, scanID)
		if err != nil {
			respondError(w, r, "fail to get scan report", err)
			return
		}

		respondJSON(w, http.StatusOK, reportResponse{MarkdownReport: scan.MarkdownReport})
	}
}

func handleExportPDF(uc interfaces.UseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userIDFromCtx(r.Context())
		if !ok {
			respondError(w, r, "export report without identity", types.ErrUnauthenticated)
			return
		}

		scanID := types.ScanID(chi.URLParam(r, "scanID"))
		scan, err := uc.GetScanReport(r.Context(), userID, scanID)
		if err != nil {
			respondError(w, r, "fail to get scan report for export", err)
			return
		}

		// Render into a buffer first so a rendering failure still yields a
		// clean error response instead of a truncated download.
		var buf bytes.Buffer
		if err := uc.RenderReportPDF(scan, &buf); err != nil {
			respondError(w, r, "fail to render report PDF", err)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report-%s.pdf", scan.ID))
		safeWrite(w, http.StatusOK, buf.Bytes())
	}
}
