package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pouchfree/pouchfree/internal/constants"
	"github.com/pouchfree/pouchfree/internal/logger"
	"github.com/pouchfree/pouchfree/internal/migration"
	"github.com/pouchfree/pouchfree/internal/models"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed default config on a fresh database
	if _, err := s.GetConfig(); err != nil {
		cfg := models.UserConfig{
			WakeTime:             constants.DefaultWakeTime,
			SleepTime:            constants.DefaultSleepTime,
			PouchIntervalMinutes: constants.AutoIntervalSentinel,
			CurrentPhase:         1,
			BaselineDailyPouches: constants.DefaultBaselineDailyPouches,
			BaselineStrengthMg:   constants.DefaultBaselineStrengthMg,
		}
		if err := s.SaveConfig(cfg); err != nil {
			return fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Schema migrations are embedded, so any pending ones apply on load
	return s.runMigrations()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) runMigrations() error {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return err
	}
	runner := migration.NewRunner(s.db, sub)
	_, err = runner.Apply(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

// Config

func (s *SQLiteStore) GetConfig() (models.UserConfig, error) {
	row := s.db.QueryRow(`
		SELECT wake_time, sleep_time, pouch_interval_minutes, current_phase,
		       start_date, baseline_daily_pouches, baseline_strength_mg
		FROM user_config WHERE id = 1`)

	var cfg models.UserConfig
	var startDate sql.NullString
	err := row.Scan(&cfg.WakeTime, &cfg.SleepTime, &cfg.PouchIntervalMinutes,
		&cfg.CurrentPhase, &startDate, &cfg.BaselineDailyPouches, &cfg.BaselineStrengthMg)
	if err != nil {
		return models.UserConfig{}, err
	}

	if startDate.Valid && startDate.String != "" {
		cfg.StartDate, err = time.Parse(time.RFC3339, startDate.String)
		if err != nil {
			return models.UserConfig{}, fmt.Errorf("failed to parse start_date: %w", err)
		}
	}
	return cfg, nil
}

func (s *SQLiteStore) SaveConfig(cfg models.UserConfig) error {
	var startDate any
	if !cfg.StartDate.IsZero() {
		startDate = cfg.StartDate.UTC().Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
		INSERT INTO user_config (id, wake_time, sleep_time, pouch_interval_minutes,
		                         current_phase, start_date, baseline_daily_pouches, baseline_strength_mg)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			wake_time = excluded.wake_time,
			sleep_time = excluded.sleep_time,
			pouch_interval_minutes = excluded.pouch_interval_minutes,
			current_phase = excluded.current_phase,
			start_date = excluded.start_date,
			baseline_daily_pouches = excluded.baseline_daily_pouches,
			baseline_strength_mg = excluded.baseline_strength_mg`,
		cfg.WakeTime, cfg.SleepTime, cfg.PouchIntervalMinutes, cfg.CurrentPhase,
		startDate, cfg.BaselineDailyPouches, cfg.BaselineStrengthMg)
	return err
}

// Usage logs

func (s *SQLiteStore) AddLog(log models.UsageLog) (models.UsageLog, error) {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO usage_logs (id, timestamp, strength_mg, trigger_type, is_over_limit, is_backfill)
		VALUES (?, ?, ?, ?, ?, ?)`,
		log.ID, log.Timestamp.UTC().Format(time.RFC3339), log.StrengthMg,
		string(log.Trigger), log.IsOverLimit, log.IsBackfill)
	if err != nil {
		return models.UsageLog{}, err
	}
	return log, nil
}

func (s *SQLiteStore) GetLog(id string) (models.UsageLog, error) {
	row := s.db.QueryRow(`
		SELECT id, timestamp, strength_mg, trigger_type, is_over_limit, is_backfill, deleted_at
		FROM usage_logs WHERE id = ? AND deleted_at IS NULL`, id)
	return scanLog(row)
}

func (s *SQLiteStore) GetAllLogs() ([]models.UsageLog, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp, strength_mg, trigger_type, is_over_limit, is_backfill, deleted_at
		FROM usage_logs WHERE deleted_at IS NULL ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.UsageLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) DeleteLog(id string) error {
	return s.softDelete("usage_logs", id)
}

func (s *SQLiteStore) RestoreLog(id string) error {
	return s.restore("usage_logs", id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLog(row rowScanner) (models.UsageLog, error) {
	var l models.UsageLog
	var ts, trigger string
	var deletedAt sql.NullString

	if err := row.Scan(&l.ID, &ts, &l.StrengthMg, &trigger, &l.IsOverLimit, &l.IsBackfill, &deletedAt); err != nil {
		return models.UsageLog{}, err
	}

	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return models.UsageLog{}, fmt.Errorf("failed to parse timestamp: %w", err)
	}
	l.Timestamp = parsed
	l.Trigger = models.TriggerType(trigger)
	l.DeletedAt = parseDeletedAt(deletedAt)
	return l, nil
}

// Reflections

func (s *SQLiteStore) AddReflection(r models.Reflection) (models.Reflection, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO reflections (id, log_id, feeling, next_time_plan, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.LogID, r.Feeling, r.NextTimePlan, r.Timestamp.UTC().Format(time.RFC3339))
	if err != nil {
		return models.Reflection{}, err
	}
	return r, nil
}

func (s *SQLiteStore) GetAllReflections() ([]models.Reflection, error) {
	rows, err := s.db.Query(`
		SELECT id, log_id, feeling, next_time_plan, timestamp, deleted_at
		FROM reflections WHERE deleted_at IS NULL ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reflections []models.Reflection
	for rows.Next() {
		var r models.Reflection
		var ts string
		var deletedAt sql.NullString

		if err := rows.Scan(&r.ID, &r.LogID, &r.Feeling, &r.NextTimePlan, &ts, &deletedAt); err != nil {
			return nil, err
		}
		r.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		r.DeletedAt = parseDeletedAt(deletedAt)
		reflections = append(reflections, r)
	}
	return reflections, rows.Err()
}

// Metric events

func (s *SQLiteStore) AddMetricEvent(e models.MetricEvent) (models.MetricEvent, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	var value any
	if e.Value != nil {
		value = *e.Value
	}
	_, err := s.db.Exec(`
		INSERT INTO metric_events (id, event_type, timestamp, value)
		VALUES (?, ?, ?, ?)`,
		e.ID, string(e.EventType), e.Timestamp.UTC().Format(time.RFC3339), value)
	if err != nil {
		return models.MetricEvent{}, err
	}
	return e, nil
}

func (s *SQLiteStore) GetAllMetricEvents() ([]models.MetricEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, event_type, timestamp, value, deleted_at
		FROM metric_events WHERE deleted_at IS NULL ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.MetricEvent
	for rows.Next() {
		var e models.MetricEvent
		var eventType, ts string
		var value sql.NullFloat64
		var deletedAt sql.NullString

		if err := rows.Scan(&e.ID, &eventType, &ts, &value, &deletedAt); err != nil {
			return nil, err
		}
		e.EventType = models.MetricEventType(eventType)
		e.Timestamp, err = time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("failed to parse timestamp: %w", err)
		}
		if value.Valid {
			v := value.Float64
			e.Value = &v
		}
		e.DeletedAt = parseDeletedAt(deletedAt)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Tapering phases

// SavePhases retires any existing plan and stores the given phases as the
// active one.
func (s *SQLiteStore) SavePhases(phases []models.TaperingPhase) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(`UPDATE tapering_phases SET deleted_at = ? WHERE deleted_at IS NULL`, now); err != nil {
		return err
	}

	for _, p := range phases {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		_, err := tx.Exec(`
			INSERT INTO tapering_phases (id, phase_number, daily_limit, strength_mg, week_start, week_end, is_extended)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.PhaseNumber, p.DailyLimit, p.StrengthMg, p.WeekStart, p.WeekEnd, p.IsExtended)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetAllPhases() ([]models.TaperingPhase, error) {
	rows, err := s.db.Query(`
		SELECT id, phase_number, daily_limit, strength_mg, week_start, week_end, is_extended, deleted_at
		FROM tapering_phases WHERE deleted_at IS NULL ORDER BY phase_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phases []models.TaperingPhase
	for rows.Next() {
		var p models.TaperingPhase
		var deletedAt sql.NullString

		if err := rows.Scan(&p.ID, &p.PhaseNumber, &p.DailyLimit, &p.StrengthMg,
			&p.WeekStart, &p.WeekEnd, &p.IsExtended, &deletedAt); err != nil {
			return nil, err
		}
		p.DeletedAt = parseDeletedAt(deletedAt)
		phases = append(phases, p)
	}
	return phases, rows.Err()
}

func (s *SQLiteStore) UpdatePhase(p models.TaperingPhase) error {
	res, err := s.db.Exec(`
		UPDATE tapering_phases
		SET daily_limit = ?, strength_mg = ?, week_start = ?, week_end = ?, is_extended = ?
		WHERE id = ? AND deleted_at IS NULL`,
		p.DailyLimit, p.StrengthMg, p.WeekStart, p.WeekEnd, p.IsExtended, p.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("phase with id %s not found", p.ID)
	}
	return nil
}

// Achievement unlocks

func (s *SQLiteStore) CreateUnlock(achievementType string, unlockedAt time.Time) error {
	// The UNIQUE constraint on achievement_type makes a duplicate create
	// a no-op rather than a second unlock row.
	_, err := s.db.Exec(`
		INSERT INTO achievement_unlocks (id, achievement_type, unlocked_at, seen)
		VALUES (?, ?, ?, 0)
		ON CONFLICT(achievement_type) DO NOTHING`,
		uuid.NewString(), achievementType, unlockedAt.UTC().Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetAllUnlocks() ([]models.AchievementUnlock, error) {
	rows, err := s.db.Query(`
		SELECT id, achievement_type, unlocked_at, seen, deleted_at
		FROM achievement_unlocks WHERE deleted_at IS NULL ORDER BY unlocked_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var unlocks []models.AchievementUnlock
	for rows.Next() {
		var u models.AchievementUnlock
		var unlockedAt string
		var deletedAt sql.NullString

		if err := rows.Scan(&u.ID, &u.AchievementType, &unlockedAt, &u.Seen, &deletedAt); err != nil {
			return nil, err
		}
		u.UnlockedAt, err = time.Parse(time.RFC3339, unlockedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse unlocked_at: %w", err)
		}
		u.DeletedAt = parseDeletedAt(deletedAt)
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

func (s *SQLiteStore) MarkUnlockSeen(id string) error {
	res, err := s.db.Exec(`UPDATE achievement_unlocks SET seen = 1 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("unlock with id %s not found", id)
	}
	return nil
}

// Journey archives

func (s *SQLiteStore) GetAllArchives() ([]models.JourneyArchive, error) {
	rows, err := s.db.Query(`
		SELECT id, archived_at, final_phase, total_days, data_snapshot, deleted_at
		FROM journey_archives WHERE deleted_at IS NULL ORDER BY archived_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var archives []models.JourneyArchive
	for rows.Next() {
		var a models.JourneyArchive
		var archivedAt string
		var snapshot sql.NullString
		var deletedAt sql.NullString

		if err := rows.Scan(&a.ID, &archivedAt, &a.FinalPhase, &a.TotalDays, &snapshot, &deletedAt); err != nil {
			return nil, err
		}
		a.ArchivedAt, err = time.Parse(time.RFC3339, archivedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse archived_at: %w", err)
		}
		a.DataSnapshot = snapshot.String
		a.DeletedAt = parseDeletedAt(deletedAt)
		archives = append(archives, a)
	}
	return archives, rows.Err()
}

func (s *SQLiteStore) ResetJourney(archive models.JourneyArchive) error {
	if archive.ID == "" {
		archive.ID = uuid.NewString()
	}
	if archive.ArchivedAt.IsZero() {
		archive.ArchivedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, table := range []string{"usage_logs", "reflections", "metric_events", "tapering_phases"} {
		if _, err := tx.Exec(fmt.Sprintf(`UPDATE %s SET deleted_at = ? WHERE deleted_at IS NULL`, table), now); err != nil {
			return err
		}
	}

	_, err = tx.Exec(`
		INSERT INTO journey_archives (id, archived_at, final_phase, total_days, data_snapshot)
		VALUES (?, ?, ?, ?, ?)`,
		archive.ID, archive.ArchivedAt.UTC().Format(time.RFC3339),
		archive.FinalPhase, archive.TotalDays, archive.DataSnapshot)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// Snapshot

func (s *SQLiteStore) Snapshot() (models.Snapshot, error) {
	var snap models.Snapshot
	var err error

	if snap.Config, err = s.GetConfig(); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Logs, err = s.GetAllLogs(); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Reflections, err = s.GetAllReflections(); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Events, err = s.GetAllMetricEvents(); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Phases, err = s.GetAllPhases(); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Unlocks, err = s.GetAllUnlocks(); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Archives, err = s.GetAllArchives(); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// Soft-delete helpers

func (s *SQLiteStore) softDelete(table, id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(fmt.Sprintf("SELECT deleted_at FROM %s WHERE id = ?", table), id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("record with id %s not found", id)
		}
		return fmt.Errorf("failed to check record existence: %w", err)
	}
	if deletedAt.Valid {
		return fmt.Errorf("record with id %s is already deleted", id)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(fmt.Sprintf("UPDATE %s SET deleted_at = ? WHERE id = ?", table), now, id)
	return err
}

func (s *SQLiteStore) restore(table, id string) error {
	var deletedAt sql.NullString
	err := s.db.QueryRow(fmt.Sprintf("SELECT deleted_at FROM %s WHERE id = ?", table), id).Scan(&deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("record with id %s not found", id)
		}
		return fmt.Errorf("failed to check record existence: %w", err)
	}
	if !deletedAt.Valid {
		return fmt.Errorf("record with id %s is not deleted", id)
	}

	_, err = s.db.Exec(fmt.Sprintf("UPDATE %s SET deleted_at = NULL WHERE id = ?", table), id)
	return err
}

func parseDeletedAt(v sql.NullString) *time.Time {
	if !v.Valid || v.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String)
	if err != nil {
		return nil
	}
	return &t
}
