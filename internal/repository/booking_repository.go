package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	models "github.com/tayotravel/tourbook/internal"
)

// DBConn is the subset of pgxpool.Pool the repositories use, narrowed
// so tests can substitute pgxmock.
type DBConn interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
}

const uniqueViolationCode = "23505"

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingSelect = `
        SELECT
            B.id, B.reference, B.adult_count, B.child_count, B.infant_count,
            B.tour_date, B.total_amount, B.status, COALESCE(B.voucher_path, ''),
            B.contact_email, COALESCE(B.contact_phone, ''), B.created_at, B.updated_at,
            U.id, U.name, U.email, U.role,
            T.id, T.title,
            P.id, P.tour_id, P.name, P.adult_price, P.child_price, P.infant_price, P.language, P.capacity
        FROM bookings B
        JOIN users U ON U.id = B.user_id
        JOIN tours T ON T.id = B.tour_id
        JOIN tour_packages P ON P.id = B.package_id
    `

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `
        INSERT INTO bookings (
            id, reference, user_id, tour_id, package_id,
            adult_count, child_count, infant_count, tour_date, total_amount,
            status, contact_email, contact_phone, created_at, updated_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
    `
	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.Reference, booking.User.ID, booking.Tour.ID, booking.Package.ID,
		booking.AdultCount, booking.ChildCount, booking.InfantCount, booking.TourDate, booking.TotalAmount,
		booking.Status, booking.ContactEmail, booking.ContactPhone, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode && strings.Contains(pgErr.ConstraintName, "reference") {
			return models.ErrDuplicateReference
		}
		return err
	}
	return nil
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	row := r.db.QueryRow(ctx, bookingSelect+" WHERE B.id = $1", id)
	booking, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (r *BookingRepository) GetBookings(ctx context.Context, filters models.BookingFilters) ([]models.Booking, error) {
	query := bookingSelect
	var args []interface{}
	var conditions []string

	if filters.UserID != uuid.Nil {
		args = append(args, filters.UserID)
		conditions = append(conditions, fmt.Sprintf("B.user_id = $%d", len(args)))
	}
	if filters.TourID != uuid.Nil {
		args = append(args, filters.TourID)
		conditions = append(conditions, fmt.Sprintf("B.tour_id = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conditions = append(conditions, fmt.Sprintf("B.status = $%d", len(args)))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY B.created_at DESC, B.id DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status models.BookingStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateBooking(ctx context.Context, id uuid.UUID, update models.BookingUpdate) error {
	var sets []string
	var args []interface{}

	if update.TourDate != nil {
		args = append(args, *update.TourDate)
		sets = append(sets, fmt.Sprintf("tour_date = $%d", len(args)))
	}
	if update.ContactEmail != nil {
		args = append(args, *update.ContactEmail)
		sets = append(sets, fmt.Sprintf("contact_email = $%d", len(args)))
	}
	if update.ContactPhone != nil {
		args = append(args, *update.ContactPhone)
		sets = append(sets, fmt.Sprintf("contact_phone = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE bookings SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) UpdateVoucherPath(ctx context.Context, id uuid.UUID, path string) error {
	tag, err := r.db.Exec(ctx, `UPDATE bookings SET voucher_path = $1, updated_at = NOW() WHERE id = $2`, path, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepository) GetBookingStats(ctx context.Context) (*models.BookingStats, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := &models.BookingStats{
		ByStatus: map[models.BookingStatus]int{
			models.StatusPending:   0,
			models.StatusConfirmed: 0,
			models.StatusCancelled: 0,
		},
	}
	for rows.Next() {
		var status models.BookingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		stats.ByStatus[status] = count
		stats.Total += count
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *BookingRepository) GetPackageByID(ctx context.Context, id uuid.UUID) (*models.TourPackage, error) {
	query := `
        SELECT id, tour_id, name, adult_price, child_price, infant_price, language, capacity
        FROM tour_packages
        WHERE id = $1
    `
	var pkg models.TourPackage
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pkg.ID, &pkg.TourID, &pkg.Name,
		&pkg.AdultPrice, &pkg.ChildPrice, &pkg.InfantPrice,
		&pkg.Language, &pkg.Capacity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.Reference, &b.AdultCount, &b.ChildCount, &b.InfantCount,
		&b.TourDate, &b.TotalAmount, &b.Status, &b.VoucherPath,
		&b.ContactEmail, &b.ContactPhone, &b.CreatedAt, &b.UpdatedAt,
		&b.User.ID, &b.User.Name, &b.User.Email, &b.User.Role,
		&b.Tour.ID, &b.Tour.Title,
		&b.Package.ID, &b.Package.TourID, &b.Package.Name,
		&b.Package.AdultPrice, &b.Package.ChildPrice, &b.Package.InfantPrice,
		&b.Package.Language, &b.Package.Capacity,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
