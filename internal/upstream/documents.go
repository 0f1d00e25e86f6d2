package upstream

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/staffdesk/staffdesk/internal/core/tableview"
)

func (c *Client) ListTemplateDocuments(ctx context.Context, token string) ([]tableview.Record, error) {
	var raw json.RawMessage
	if err := c.do(ctx, token, http.MethodGet, "/api/template-documents", nil, nil, &raw); err != nil {
		return nil, err
	}
	return tableview.NormalizeAll(decodeList(raw, "documents")), nil
}

type TemplateDocumentRequest struct {
	DocumentName           string   `json:"document_name" binding:"required"`
	Category               string   `json:"category"`
	Description            string   `json:"description"`
	ApprovalRequired       bool     `json:"approvalRequired"`
	AdditionalDocsRequired bool     `json:"additionalDocsRequired"`
	NotificationUserIDs    []string `json:"notification_user_ids"`
	// FileName and FileData carry an optional attachment; FileData is
	// base64 as received from the dashboard.
	FileName string `json:"file_name"`
	FileData string `json:"file_data"`
}

// CreateTemplateDocument uploads a template document as multipart form
// data, decoding the base64 file payload when one is attached.
func (c *Client) CreateTemplateDocument(ctx context.Context, token string, req TemplateDocumentRequest) error {
	var file []byte
	if req.FileData != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.FileData)
		if err != nil {
			return fmt.Errorf("upstream: decode file payload: %w", err)
		}
		file = decoded
	}

	fields := map[string]string{
		"document_name":          req.DocumentName,
		"category":               req.Category,
		"description":            req.Description,
		"approvalRequired":       strconv.FormatBool(req.ApprovalRequired),
		"additionalDocsRequired": strconv.FormatBool(req.AdditionalDocsRequired),
	}
	repeated := map[string][]string{
		"notification_user_ids": req.NotificationUserIDs,
	}

	return c.doMultipart(ctx, token, "/api/template-documents", fields, repeated, req.FileName, file, nil)
}
