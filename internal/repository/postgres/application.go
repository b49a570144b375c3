package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"memberbase-backend/internal/domain"
	"memberbase-backend/internal/repository"

	"github.com/lib/pq"
)

type applicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationColumns = `id, email, first_name, last_name, phone, constituency, interests,
	volunteer, newsletter, social_media_handle, is_british_citizen, lives_in_uk,
	brief_bio, brief_cv, other_affiliations, interested_in, can_contribute,
	signed_nda, gdpr_consent, status, reviewed_by, review_notes, resolved_at,
	created_on, updated_on`

func (r *applicationRepository) Upsert(ctx context.Context, app *domain.PendingApplication) error {
	// The partial DO UPDATE matches only non-UNREVIEWED rows; a conflicting
	// UNREVIEWED row yields zero rows, which closes the check-then-act race
	// between two concurrent submissions for the same email.
	query := `INSERT INTO pending_applications (
	              email, first_name, last_name, phone, constituency, interests,
	              volunteer, newsletter, social_media_handle, is_british_citizen,
	              lives_in_uk, brief_bio, brief_cv, other_affiliations,
	              interested_in, can_contribute, signed_nda, gdpr_consent,
	              status, review_notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
	              $14, $15, $16, $17, $18, 'UNREVIEWED', '', NOW(), NOW())
	          ON CONFLICT (email) DO UPDATE SET
	              first_name = EXCLUDED.first_name,
	              last_name = EXCLUDED.last_name,
	              phone = EXCLUDED.phone,
	              constituency = EXCLUDED.constituency,
	              interests = EXCLUDED.interests,
	              volunteer = EXCLUDED.volunteer,
	              newsletter = EXCLUDED.newsletter,
	              social_media_handle = EXCLUDED.social_media_handle,
	              is_british_citizen = EXCLUDED.is_british_citizen,
	              lives_in_uk = EXCLUDED.lives_in_uk,
	              brief_bio = EXCLUDED.brief_bio,
	              brief_cv = EXCLUDED.brief_cv,
	              other_affiliations = EXCLUDED.other_affiliations,
	              interested_in = EXCLUDED.interested_in,
	              can_contribute = EXCLUDED.can_contribute,
	              signed_nda = EXCLUDED.signed_nda,
	              gdpr_consent = EXCLUDED.gdpr_consent,
	              status = 'UNREVIEWED',
	              reviewed_by = NULL,
	              review_notes = '',
	              resolved_at = NULL,
	              updated_on = NOW()
	          WHERE pending_applications.status <> 'UNREVIEWED'
	          RETURNING id, status, created_on, updated_on`

	err := r.db.QueryRowContext(ctx, query,
		app.Email, app.FirstName, app.LastName, app.Phone, app.Constituency,
		pq.Array(app.Interests), app.Volunteer, app.Newsletter,
		app.SocialMediaHandle, app.IsBritishCitizen, app.LivesInUK,
		app.BriefBio, app.BriefCV, app.OtherAffiliations,
		pq.Array(app.InterestedIn), pq.Array(app.CanContribute),
		app.SignedNDA, app.GDPRConsent,
	).Scan(&app.ID, &app.Status, &app.CreatedOn, &app.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrDuplicatePending
	}
	return err
}

func (r *applicationRepository) GetByID(ctx context.Context, id int32) (*domain.PendingApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM pending_applications WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *applicationRepository) GetByEmail(ctx context.Context, email string) (*domain.PendingApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM pending_applications WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *applicationRepository) List(ctx context.Context, status domain.ApplicationStatus) ([]domain.PendingApplication, error) {
	query := `SELECT ` + applicationColumns + ` FROM pending_applications`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_on DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []domain.PendingApplication
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int32, from, to domain.ApplicationStatus, reviewedBy int32, notes string, resolvedAt *time.Time) error {
	query := `UPDATE pending_applications
	          SET status = $1, reviewed_by = $2, review_notes = $3, resolved_at = $4, updated_on = NOW()
	          WHERE id = $5 AND status = $6`
	result, err := r.db.ExecContext(ctx, query, to, reviewedBy, notes, resolvedAt, id, from)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrStaleStatus
	}
	return nil
}

func (r *applicationRepository) ApproveAndMintCode(ctx context.Context, id int32, from domain.ApplicationStatus, reviewedBy int32, notes string, code *domain.AccessCode) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE pending_applications
		 SET status = 'APPROVED', reviewed_by = $1, review_notes = $2, resolved_at = NOW(), updated_on = NOW()
		 WHERE id = $3 AND status = $4`,
		reviewedBy, notes, id, from)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrStaleStatus
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO access_codes (code, email, first_name, last_name, constituency, roles, expires_on, used, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, false, NOW())
		 RETURNING created_on`,
		code.Code, code.Email, code.FirstName, code.LastName, code.Constituency,
		pq.Array(roleStrings(code.Roles)), code.ExpiresOn,
	).Scan(&code.CreatedOn)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *applicationRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM pending_applications WHERE LOWER(email) = LOWER($1)`, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *applicationRepository) DeleteResolvedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_applications WHERE status IN ('APPROVED', 'REJECTED') AND updated_on < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *applicationRepository) DeleteUnreviewedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM pending_applications WHERE status = 'UNREVIEWED' AND created_on < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *applicationRepository) scanOne(row rowScanner) (*domain.PendingApplication, error) {
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func scanApplication(row rowScanner) (*domain.PendingApplication, error) {
	app := &domain.PendingApplication{}
	var interests, interestedIn, canContribute pq.StringArray
	err := row.Scan(
		&app.ID, &app.Email, &app.FirstName, &app.LastName, &app.Phone,
		&app.Constituency, &interests, &app.Volunteer, &app.Newsletter,
		&app.SocialMediaHandle, &app.IsBritishCitizen, &app.LivesInUK,
		&app.BriefBio, &app.BriefCV, &app.OtherAffiliations,
		&interestedIn, &canContribute, &app.SignedNDA, &app.GDPRConsent,
		&app.Status, &app.ReviewedBy, &app.ReviewNotes, &app.ResolvedAt,
		&app.CreatedOn, &app.UpdatedOn,
	)
	if err != nil {
		return nil, err
	}
	app.Interests = interests
	app.InterestedIn = interestedIn
	app.CanContribute = canContribute
	return app, nil
}

func roleStrings(roles []domain.Role) []string {
	return domain.RoleStrings(roles)
}
