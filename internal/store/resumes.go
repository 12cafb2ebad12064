package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lucemia/agent-hr/internal/types"
)

// SaveResult reports how a batch save broke down.
type SaveResult struct {
	New     int
	Updated int
}

// Total returns the number of records written.
func (r SaveResult) Total() int {
	return r.New + r.Updated
}

const resumeColumns = `id, full_name, email, phone, resume_file, position_applied,
	application_date, test_score, test_url, interview_status, interview_date,
	application_status, recruiter_notes, hr_notes, technical_notes,
	years_experience, skills, source, source_id, created_at, updated_at`

// SaveResumes persists a batch of records. Each record with a resume
// artifact gets a best-effort backup first; the row upserts themselves run
// in one transaction keyed on (email, source): either the whole batch
// commits or none of it does.
func (s *Store) SaveResumes(ctx context.Context, resumes []*types.Resume) (SaveResult, error) {
	s.backupArtifacts(ctx, resumes)

	var result SaveResult

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin save tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, resume := range resumes {
		updated, err := s.upsert(ctx, tx, resume)
		if err != nil {
			return SaveResult{}, err
		}
		if updated {
			result.Updated++
		} else {
			result.New++
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveResult{}, fmt.Errorf("commit save tx: %w", err)
	}
	return result, nil
}

// backupArtifacts runs the backup hook for every record that references a
// resume file. Backups sit outside the save transaction and never abort it.
func (s *Store) backupArtifacts(ctx context.Context, resumes []*types.Resume) {
	if s.backup == nil {
		return
	}
	for _, resume := range resumes {
		if resume.ResumeFile == nil {
			continue
		}
		source := "unknown"
		if resume.Source != nil {
			source = *resume.Source
		}
		if _, err := s.backup(ctx, source, *resume.ResumeFile); err != nil {
			s.log.Warn("resume backup failed",
				"source", source, "resume_file", *resume.ResumeFile, "error", err)
		}
	}
}

// upsert writes one record inside the batch transaction, reporting whether
// it replaced an existing row. Records lacking either half of the
// uniqueness key are always inserted as new.
func (s *Store) upsert(ctx context.Context, tx *sql.Tx, resume *types.Resume) (bool, error) {
	now := time.Now().UTC()

	email, source := resume.UniquenessKey()
	if email != "" && source != "" {
		var existingID int64
		var existingCreated sql.NullString
		err := tx.QueryRowContext(ctx,
			`SELECT id, created_at FROM resumes WHERE email = ? AND source = ? LIMIT 1`,
			email, source,
		).Scan(&existingID, &existingCreated)
		switch {
		case err == nil:
			// Overwrite everything except the surrogate key and creation time.
			_, err = tx.ExecContext(ctx,
				`UPDATE resumes SET
					full_name = ?, email = ?, phone = ?, resume_file = ?,
					position_applied = ?, application_date = ?, test_score = ?,
					test_url = ?, interview_status = ?, interview_date = ?,
					application_status = ?, recruiter_notes = ?, hr_notes = ?,
					technical_notes = ?, years_experience = ?, skills = ?,
					source = ?, source_id = ?, updated_at = ?
				 WHERE id = ?`,
				nullString(resume.FullName), email, nullString(resume.Phone),
				nullString(resume.ResumeFile), nullString(resume.PositionApplied),
				nullTime(resume.ApplicationDate), nullFloat(resume.TestScore),
				nullString(resume.TestURL), nullInterview(resume.InterviewStatus),
				nullTime(resume.InterviewDate), nullApplication(resume.ApplicationStatus),
				nullString(resume.RecruiterNotes), nullString(resume.HRNotes),
				nullString(resume.TechnicalNotes), nullInt(resume.YearsExperience),
				nullString(resume.Skills), source, nullString(resume.SourceID),
				now.Format(time.RFC3339Nano), existingID,
			)
			if err != nil {
				return false, fmt.Errorf("update resume %d: %w", existingID, err)
			}
			return true, nil
		case err != sql.ErrNoRows:
			return false, fmt.Errorf("lookup resume by (email, source): %w", err)
		}
	}

	created := now
	if resume.CreatedAt != nil {
		created = resume.CreatedAt.UTC()
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO resumes (
			full_name, email, phone, resume_file, position_applied,
			application_date, test_score, test_url, interview_status,
			interview_date, application_status, recruiter_notes, hr_notes,
			technical_notes, years_experience, skills, source, source_id,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullString(resume.FullName), nullString(resume.Email), nullString(resume.Phone),
		nullString(resume.ResumeFile), nullString(resume.PositionApplied),
		nullTime(resume.ApplicationDate), nullFloat(resume.TestScore),
		nullString(resume.TestURL), nullInterview(resume.InterviewStatus),
		nullTime(resume.InterviewDate), nullApplication(resume.ApplicationStatus),
		nullString(resume.RecruiterNotes), nullString(resume.HRNotes),
		nullString(resume.TechnicalNotes), nullInt(resume.YearsExperience),
		nullString(resume.Skills), nullString(resume.Source), nullString(resume.SourceID),
		created.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return false, fmt.Errorf("insert resume: %w", err)
	}
	return false, nil
}

// GetResumes returns stored records, newest surrogate keys last, optionally
// capped and filtered by source.
func (s *Store) GetResumes(ctx context.Context, limit int, source string) ([]*types.Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query resumes: %w", err)
	}
	defer rows.Close()

	var resumes []*types.Resume
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, resume)
	}
	return resumes, rows.Err()
}

// CountResumes counts stored records, optionally filtered by source.
func (s *Store) CountResumes(ctx context.Context, source string) (int, error) {
	query := `SELECT COUNT(1) FROM resumes`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count resumes: %w", err)
	}
	return count, nil
}

// RemoveDuplicates deletes all but one record per (email, source) group.
// The survivor is the row with the latest updated_at, falling back to
// created_at; among rows with identical (or entirely missing) timestamps
// the highest surrogate id wins. Returns the number of rows removed.
//
// Timestamps are parsed and compared as times, not as strings: RFC 3339
// fractions have no fixed width, so lexicographic order over the stored
// text does not match time order.
func (s *Store) RemoveDuplicates(ctx context.Context) (int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, source, updated_at, created_at FROM resumes
		 WHERE email IS NOT NULL AND source IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("query duplicates: %w", err)
	}
	defer rows.Close()

	type candidate struct {
		id      int64
		touched time.Time
	}
	type key struct{ email, source string }
	survivors := make(map[key]candidate)
	var doomed []int64
	for rows.Next() {
		var id int64
		var email, source string
		var updated, created sql.NullString
		if err := rows.Scan(&id, &email, &source, &updated, &created); err != nil {
			return 0, fmt.Errorf("scan duplicate row: %w", err)
		}

		cur := candidate{id: id, touched: parseStoredTime(updated, created)}
		k := key{email, source}
		best, ok := survivors[k]
		if !ok {
			survivors[k] = cur
			continue
		}
		if cur.touched.After(best.touched) ||
			(cur.touched.Equal(best.touched) && cur.id > best.id) {
			survivors[k] = cur
			doomed = append(doomed, best.id)
			continue
		}
		doomed = append(doomed, cur.id)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(doomed) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin dedupe tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range doomed {
		if _, err := tx.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id); err != nil {
			return 0, fmt.Errorf("delete resume %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit dedupe tx: %w", err)
	}
	return len(doomed), nil
}

func scanResume(rows *sql.Rows) (*types.Resume, error) {
	var (
		id                                  int64
		fullName, email, phone              sql.NullString
		resumeFile, position                sql.NullString
		applicationDate                     sql.NullString
		testScore                           sql.NullFloat64
		testURL, interviewStatus            sql.NullString
		interviewDate, applicationStatus    sql.NullString
		recruiterNotes, hrNotes, techNotes  sql.NullString
		yearsExperience                     sql.NullInt64
		skills, source, sourceID            sql.NullString
		createdAt, updatedAt                sql.NullString
	)

	err := rows.Scan(&id, &fullName, &email, &phone, &resumeFile, &position,
		&applicationDate, &testScore, &testURL, &interviewStatus, &interviewDate,
		&applicationStatus, &recruiterNotes, &hrNotes, &techNotes,
		&yearsExperience, &skills, &source, &sourceID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("scan resume: %w", err)
	}

	resume := &types.Resume{
		ID:              &id,
		FullName:        stringPtr(fullName),
		Email:           stringPtr(email),
		Phone:           stringPtr(phone),
		ResumeFile:      stringPtr(resumeFile),
		PositionApplied: stringPtr(position),
		ApplicationDate: timePtr(applicationDate),
		TestURL:         stringPtr(testURL),
		InterviewDate:   timePtr(interviewDate),
		RecruiterNotes:  stringPtr(recruiterNotes),
		HRNotes:         stringPtr(hrNotes),
		TechnicalNotes:  stringPtr(techNotes),
		Skills:          stringPtr(skills),
		Source:          stringPtr(source),
		SourceID:        stringPtr(sourceID),
		CreatedAt:       timePtr(createdAt),
		UpdatedAt:       timePtr(updatedAt),
	}
	if testScore.Valid {
		resume.TestScore = &testScore.Float64
	}
	if yearsExperience.Valid {
		years := int(yearsExperience.Int64)
		resume.YearsExperience = &years
	}
	if interviewStatus.Valid {
		status := types.InterviewStatus(interviewStatus.String)
		resume.InterviewStatus = &status
	}
	if applicationStatus.Valid {
		status := types.ApplicationStatus(applicationStatus.String)
		resume.ApplicationStatus = &status
	}
	return resume, nil
}

// parseStoredTime reads a row's effective touch time: updated_at when
// present and parseable, else created_at, else the zero time.
func parseStoredTime(updated, created sql.NullString) time.Time {
	for _, v := range []sql.NullString{updated, created} {
		if !v.Valid || v.String == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339Nano, v.String); err == nil {
			return t
		}
	}
	return time.Time{}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func timePtr(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return v.UTC().Format(time.RFC3339Nano)
}

func nullInterview(v *types.InterviewStatus) any {
	if v == nil {
		return nil
	}
	return string(*v)
}

func nullApplication(v *types.ApplicationStatus) any {
	if v == nil {
		return nil
	}
	return string(*v)
}
