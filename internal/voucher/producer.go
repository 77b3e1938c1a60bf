// Package voucher renders booking voucher PDFs with an embedded QR code
// linking back to the booking, and persists them to the uploads
// directory.
package voucher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
	qrcode "github.com/skip2/go-qrcode"

	models "github.com/tayotravel/tourbook/internal"
	"github.com/tayotravel/tourbook/internal/ports"
	"github.com/tayotravel/tourbook/pkg/config"
)

type qrEncoder struct{}

func (qrEncoder) Encode(url string, size int) ([]byte, error) {
	return qrcode.Encode(url, qrcode.Medium, size)
}

// NewQREncoder returns the default PNG QR encoder.
func NewQREncoder() ports.QREncoder {
	return qrEncoder{}
}

type Producer struct {
	repo ports.BookingRepository
	qr   ports.QREncoder
	cfg  config.VoucherConfig
	log  *logrus.Logger
}

func NewProducer(repo ports.BookingRepository, qr ports.QREncoder, cfg config.VoucherConfig, log *logrus.Logger) *Producer {
	return &Producer{
		repo: repo,
		qr:   qr,
		cfg:  cfg,
		log:  log,
	}
}

func (p *Producer) Generate(ctx context.Context, bookingID uuid.UUID) ([]byte, error) {
	booking, err := p.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return p.render(booking)
}

func (p *Producer) Fetch(ctx context.Context, bookingID uuid.UUID) ([]byte, error) {
	booking, err := p.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.VoucherPath != "" {
		buf, err := os.ReadFile(filepath.Join(p.cfg.OutputDir, path.Base(booking.VoucherPath)))
		if err == nil {
			return buf, nil
		}
		p.log.WithError(err).WithField("booking_id", booking.ID).Warn("stored voucher unreadable, regenerating")
	}
	return p.render(booking)
}

func (p *Producer) Persist(ctx context.Context, bookingID uuid.UUID) (string, error) {
	booking, err := p.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return "", err
	}

	buf, err := p.render(booking)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating voucher directory: %w", err)
	}

	name := fmt.Sprintf("booking-%s-%d.pdf", booking.ID, time.Now().UnixMilli())
	if err := os.WriteFile(filepath.Join(p.cfg.OutputDir, name), buf, 0o644); err != nil {
		return "", fmt.Errorf("error writing voucher file: %w", err)
	}

	publicPath := path.Join(p.cfg.PublicPrefix, name)
	if err := p.repo.UpdateVoucherPath(ctx, booking.ID, publicPath); err != nil {
		return "", fmt.Errorf("error recording voucher location: %w", err)
	}

	// the new file is confirmed written; drop the superseded one
	if booking.VoucherPath != "" && booking.VoucherPath != publicPath {
		old := filepath.Join(p.cfg.OutputDir, path.Base(booking.VoucherPath))
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			p.log.WithError(err).WithField("path", old).Warn("could not remove superseded voucher file")
		}
	}

	return publicPath, nil
}

type qrResult struct {
	png []byte
	err error
}

// render assembles the voucher document. QR encoding runs concurrently
// with the text layout; the document is finalized only once the image
// bytes are available, and a QR failure fails the whole render.
func (p *Producer) render(booking *models.Booking) ([]byte, error) {
	link := fmt.Sprintf("%s/booking/%s", strings.TrimRight(p.cfg.FrontendBaseURL, "/"), booking.ID)

	qrCh := make(chan qrResult, 1)
	go func() {
		png, err := p.qr.Encode(link, p.cfg.QRSize)
		qrCh <- qrResult{png: png, err: err}
	}()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Booking Voucher", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Booking Voucher", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range voucherLines(booking) {
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	qr := <-qrCh
	if qr.err != nil {
		return nil, fmt.Errorf("error encoding voucher QR code: %w", qr.err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("booking-qr", opts, bytes.NewReader(qr.png))
	pdf.ImageOptions("booking-qr", 15, pdf.GetY(), 45, 45, false, opts, 0, "")
	pdf.SetY(pdf.GetY() + 48)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, link, "", 1, "L", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated at %s", time.Now().UTC().Format(time.RFC1123)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error assembling voucher document: %w", err)
	}
	return buf.Bytes(), nil
}

// voucherLines builds the textual body of the voucher. Participant
// categories with a zero count are omitted.
func voucherLines(b *models.Booking) []string {
	lines := []string{
		fmt.Sprintf("Reference: %s", b.Reference),
		fmt.Sprintf("Tour: %s", b.Tour.Title),
		fmt.Sprintf("Package: %s (%s)", b.Package.Name, b.Package.Language),
		fmt.Sprintf("Date: %s", b.TourDate.Format("02 Jan 2006")),
	}
	if b.AdultCount > 0 {
		lines = append(lines, fmt.Sprintf("Adults: %d", b.AdultCount))
	}
	if b.ChildCount > 0 {
		lines = append(lines, fmt.Sprintf("Children: %d", b.ChildCount))
	}
	if b.InfantCount > 0 {
		lines = append(lines, fmt.Sprintf("Infants: %d", b.InfantCount))
	}
	return append(lines, fmt.Sprintf("Total: %s", b.TotalAmount.StringFixed(2)))
}
