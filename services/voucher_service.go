package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"

	config "tourmarket/configs"
	"tourmarket/models"
	"tourmarket/repository"
)

// VoucherService renders a booking voucher PDF and stores it on the booking
// once the guide confirms. Generation is best-effort; a failure is logged and
// never blocks the confirmation itself.
type VoucherService struct {
	bookings repository.BookingStore
}

func NewVoucherService(bookings repository.BookingStore) *VoucherService {
	return &VoucherService{bookings: bookings}
}

func (s *VoucherService) GenerateForBooking(bookingID uuid.UUID) {
	booking, err := s.bookings.GetBooking(bookingID)
	if err != nil {
		log.Printf("🔥 Failed to load booking %s for voucher generation: %v", bookingID, err)
		return
	}
	if booking.Status != models.BookingStatusConfirmed {
		return
	}
	if booking.VoucherURL != nil {
		return
	}

	htmlData, err := renderVoucherHTML(booking)
	if err != nil {
		log.Printf("🔥 Failed to render voucher HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate voucher PDF: %v", err)
		return
	}

	uploadURL, err := uploadVoucherToCloudinary(pdfBytes, booking.ID.String())
	if err != nil {
		log.Printf("🔥 Failed to upload voucher to Cloudinary: %v", err)
		return
	}

	if err := s.bookings.SetBookingVoucherURL(booking.ID, uploadURL); err != nil {
		log.Printf("🔥 Failed to store voucher URL for booking %s: %v", booking.ID, err)
		return
	}
	log.Printf("✅ Generated and uploaded voucher for booking %s.", booking.ID)
}

func renderVoucherHTML(booking *models.Booking) (string, error) {
	tmpl, err := template.ParseFiles("templates/voucher.html")
	if err != nil {
		return "", err
	}

	touristName := booking.Tourist.FirstName
	if booking.Tourist.LastName != nil && *booking.Tourist.LastName != "" {
		touristName = fmt.Sprintf("%s %s", booking.Tourist.FirstName, *booking.Tourist.LastName)
	}

	data := struct {
		BookingID      string
		TouristName    string
		ProgramTitle   string
		StartDate      string
		NumberOfPeople int
		TotalPrice     string
		IssuedAt       string
	}{
		BookingID:      booking.ID.String(),
		TouristName:    touristName,
		ProgramTitle:   booking.Program.Title,
		StartDate:      booking.StartDate.Format("January 2, 2006"),
		NumberOfPeople: booking.NumberOfPeople,
		TotalPrice:     fmt.Sprintf("%.2f", booking.TotalPrice),
		IssuedAt:       time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadVoucherToCloudinary(fileBytes []byte, bookingID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("vouchers/%s_%s", bookingID, uuid.New().String()),
		Folder:       "tourmarket_vouchers",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
