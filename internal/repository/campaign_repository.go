package repository

import (
	"database/sql"

	"github.com/adlaunch/adlaunch-api/internal/models"
)

type CampaignRepository interface {
	List(userID string) ([]models.Campaign, error)
	Get(userID, id string) (*models.Campaign, error)
	Create(c *models.Campaign) (*models.Campaign, error)
	Update(c *models.Campaign) (*models.Campaign, error)
	Delete(userID, id string) error

	// SetSubmitted records the platform-assigned campaign id and moves the
	// campaign to submitted. Called by the worker only, on job completion.
	SetSubmitted(id, remoteCampaignID string) error
}

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignColumns = `id, user_id, ad_account_id, name, objective, budget, start_date, end_date,
	geography, age_range, gender, placements, creative_asset_id, status, remote_campaign_id, created_at, updated_at`

func (r *campaignRepository) List(userID string) ([]models.Campaign, error) {
	rows, err := r.db.Query(`
		SELECT `+campaignColumns+`
		FROM ads.campaigns
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func (r *campaignRepository) Get(userID, id string) (*models.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRow(`
		SELECT `+campaignColumns+`
		FROM ads.campaigns
		WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) Create(c *models.Campaign) (*models.Campaign, error) {
	const query = `
		INSERT INTO ads.campaigns
			(user_id, ad_account_id, name, objective, budget, start_date, end_date,
			 geography, age_range, gender, placements, creative_asset_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query,
		c.UserID, c.AdAccountID, c.Name, c.Objective, c.Budget, c.StartDate, c.EndDate,
		c.Geography, c.AgeRange, c.Gender, c.Placements, c.CreativeAssetID, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) Update(c *models.Campaign) (*models.Campaign, error) {
	const query = `
		UPDATE ads.campaigns
		SET ad_account_id = $1, name = $2, objective = $3, budget = $4, start_date = $5,
		    end_date = $6, geography = $7, age_range = $8, gender = $9, placements = $10,
		    creative_asset_id = $11, status = $12, updated_at = NOW()
		WHERE id = $13 AND user_id = $14
		RETURNING updated_at`
	err := r.db.QueryRow(query,
		c.AdAccountID, c.Name, c.Objective, c.Budget, c.StartDate,
		c.EndDate, c.Geography, c.AgeRange, c.Gender, c.Placements,
		c.CreativeAssetID, c.Status, c.ID, c.UserID,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *campaignRepository) Delete(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM ads.campaigns WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *campaignRepository) SetSubmitted(id, remoteCampaignID string) error {
	_, err := r.db.Exec(`
		UPDATE ads.campaigns
		SET status = $1, remote_campaign_id = $2, updated_at = NOW()
		WHERE id = $3`,
		models.CampaignStatusSubmitted, remoteCampaignID, id)
	return err
}

func scanCampaign(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Campaign, error) {
	var (
		c               models.Campaign
		startDate       sql.NullTime
		endDate         sql.NullTime
		creativeAssetID sql.NullString
		remoteID        sql.NullString
	)
	if err := scanner.Scan(
		&c.ID,
		&c.UserID,
		&c.AdAccountID,
		&c.Name,
		&c.Objective,
		&c.Budget,
		&startDate,
		&endDate,
		&c.Geography,
		&c.AgeRange,
		&c.Gender,
		&c.Placements,
		&creativeAssetID,
		&c.Status,
		&remoteID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if startDate.Valid {
		t := startDate.Time
		c.StartDate = &t
	}
	if endDate.Valid {
		t := endDate.Time
		c.EndDate = &t
	}
	if creativeAssetID.Valid {
		v := creativeAssetID.String
		c.CreativeAssetID = &v
	}
	if remoteID.Valid {
		v := remoteID.String
		c.RemoteCampaignID = &v
	}
	return &c, nil
}
