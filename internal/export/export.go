package export

import (
	"context"
	"io"

	"yadoya/infras/otel"
	bookingRepository "yadoya/internal/domains/booking/repository"
	messageRepository "yadoya/internal/domains/message/repository"
	"yadoya/shared/constant"
	"yadoya/shared/excel"
	"yadoya/shared/failure"
)

// Exporter renders admin spreadsheet downloads.
type Exporter interface {
	Bookings(ctx context.Context, w io.Writer) error
	Messages(ctx context.Context, w io.Writer) error
}

type exporterImpl struct {
	bookingRepo bookingRepository.Booking
	messageRepo messageRepository.Message
	otel        otel.Otel
}

func New(bookingRepo bookingRepository.Booking, messageRepo messageRepository.Message, otel otel.Otel) Exporter {
	return &exporterImpl{
		bookingRepo: bookingRepo,
		messageRepo: messageRepo,
		otel:        otel,
	}
}

func (e *exporterImpl) Bookings(ctx context.Context, w io.Writer) (err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".export.Bookings")
	defer scope.End()
	defer scope.TraceIfError(err)

	bookings, err := e.bookingRepo.GetAll(ctx)
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	writer := excel.NewWriter()
	defer writer.Close()

	if err := writer.AddSheet("Bookings"); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	header := []string{"ID", "Room ID", "Name", "Email", "Check In", "Check Out", "Guests", "Status", "Created At"}
	if err := writer.WriteHeader(header); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	for _, booking := range bookings {
		row := []interface{}{
			booking.ID,
			booking.RoomID,
			booking.Name,
			booking.Email,
			booking.CheckIn,
			booking.CheckOut,
			booking.Guests,
			booking.Status,
			booking.CreatedAt,
		}
		if err := writer.WriteRow(row); err != nil {
			return failure.InternalError(err) //nolint:wrapcheck
		}
	}

	if err := writer.Save(w); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	return nil
}

func (e *exporterImpl) Messages(ctx context.Context, w io.Writer) (err error) {
	ctx, scope := e.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".export.Messages")
	defer scope.End()
	defer scope.TraceIfError(err)

	messages, err := e.messageRepo.GetAll(ctx)
	if err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	writer := excel.NewWriter()
	defer writer.Close()

	if err := writer.AddSheet("Messages"); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	header := []string{"ID", "Name", "Email", "Content", "Replied", "Replied At", "Created At"}
	if err := writer.WriteHeader(header); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	for _, message := range messages {
		row := []interface{}{
			message.ID,
			message.Name,
			message.Email,
			message.Content,
			message.IsReplied,
			message.RepliedAt,
			message.CreatedAt,
		}
		if err := writer.WriteRow(row); err != nil {
			return failure.InternalError(err) //nolint:wrapcheck
		}
	}

	if err := writer.Save(w); err != nil {
		return failure.InternalError(err) //nolint:wrapcheck
	}

	return nil
}
