package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/phoenix-adventures/trip-service/internal/domain"
)

// ReceiptRenderer renders uploaded payment receipts into a reviewable PDF,
// one page per receipt with the uploader's details.
type ReceiptRenderer struct {
	client *http.Client
}

// NewReceiptRenderer builds the renderer.
func NewReceiptRenderer() *ReceiptRenderer {
	return &ReceiptRenderer{
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Render writes the PDF document to w.
func (r *ReceiptRenderer) Render(ctx context.Context, title string, receipts []domain.ReceiptWithUploader, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)

	for i, receipt := range receipts {
		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 16)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")

		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, fmt.Sprintf("Uploaded by: %s %s", receipt.FirstName, receipt.LastName), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("Email: %s", receipt.Email), "", 1, "L", false, 0, "")
		pdf.Ln(4)

		if err := r.drawImage(ctx, pdf, fmt.Sprintf("receipt-%d", i), receipt.ImageURL); err != nil {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.CellFormat(0, 8, fmt.Sprintf("image unavailable: %s", receipt.ImageURL), "", 1, "L", false, 0, "")
		}
	}

	if len(receipts) == 0 {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 10, "No receipts have been uploaded yet.", "", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

func (r *ReceiptRenderer) drawImage(ctx context.Context, pdf *gofpdf.Fpdf, name, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	imageType := imageTypeFor(url, resp.Header.Get("Content-Type"))
	if imageType == "" {
		return fmt.Errorf("unsupported image format for %s", url)
	}

	opts := gofpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	pdf.RegisterImageOptionsReader(name, opts, resp.Body)
	pdf.ImageOptions(name, 15, pdf.GetY(), 180, 0, false, opts, 0, "")
	return pdf.Error()
}

func imageTypeFor(url, contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return "JPG"
	case strings.Contains(contentType, "png"):
		return "PNG"
	case strings.Contains(contentType, "gif"):
		return "GIF"
	}
	switch strings.ToLower(path.Ext(url)) {
	case ".jpg", ".jpeg":
		return "JPG"
	case ".png":
		return "PNG"
	case ".gif":
		return "GIF"
	}
	return ""
}
