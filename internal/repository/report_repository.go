package repository

import (
	"database/sql"
	"encoding/json"

	"stockintel/internal/model"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) SaveReport(ticker, company string, report model.AnalystReport) error {
	keyDrivers, err := json.Marshal(report.KeyDrivers)
	if err != nil {
		return err
	}
	risks, err := json.Marshal(report.Risks)
	if err != nil {
		return err
	}
	evidence, err := json.Marshal(report.Evidence)
	if err != nil {
		return err
	}

	var id int64
	return r.db.QueryRow(`
		INSERT INTO analyst_report(ticker, company, summary, sentiment, key_drivers, risks, evidence, confidence)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, ticker, company, report.Summary, report.Sentiment, keyDrivers, risks, evidence, report.Confidence).Scan(&id)
}

func (r *ReportRepository) GetLatestByTicker(ticker string) (*model.StoredReport, error) {
	var s model.StoredReport
	var keyDriversJSON, risksJSON, evidenceJSON []byte

	err := r.db.QueryRow(`
		SELECT id, ticker, company, summary, sentiment, key_drivers, risks, evidence, confidence, created_at
		FROM analyst_report
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, ticker).Scan(&s.ID, &s.Ticker, &s.Company, &s.Report.Summary, &s.Report.Sentiment,
		&keyDriversJSON, &risksJSON, &evidenceJSON, &s.Report.Confidence, &s.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(keyDriversJSON, &s.Report.KeyDrivers); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(risksJSON, &s.Report.Risks); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(evidenceJSON, &s.Report.Evidence); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *ReportRepository) GetReports(limit, offset int) ([]model.StoredReport, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker, company, summary, sentiment, key_drivers, risks, evidence, confidence, created_at
		FROM analyst_report
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.StoredReport
	for rows.Next() {
		var s model.StoredReport
		var keyDriversJSON, risksJSON, evidenceJSON []byte
		err := rows.Scan(&s.ID, &s.Ticker, &s.Company, &s.Report.Summary, &s.Report.Sentiment,
			&keyDriversJSON, &risksJSON, &evidenceJSON, &s.Report.Confidence, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(keyDriversJSON, &s.Report.KeyDrivers); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(risksJSON, &s.Report.Risks); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(evidenceJSON, &s.Report.Evidence); err != nil {
			return nil, err
		}
		reports = append(reports, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *ReportRepository) GetReportTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM analyst_report`).Scan(&total)
	return total, err
}
