package repository

import (
	"database/sql"

	"github.com/adlaunch/adlaunch-api/internal/models"
)

type AssetRepository interface {
	// Folders
	ListFolders(userID string, parentID *string) ([]models.AssetFolder, error)
	CreateFolder(folder *models.AssetFolder) (*models.AssetFolder, error)
	RenameFolder(userID, id, name string) (*models.AssetFolder, error)
	DeleteFolder(userID, id string) error

	// Assets
	List(userID string, folderID *string) ([]models.Asset, error)
	Get(userID, id string) (*models.Asset, error)
	Create(asset *models.Asset) (*models.Asset, error)
	Update(asset *models.Asset) (*models.Asset, error)
	Delete(userID, id string) error
}

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) AssetRepository {
	return &assetRepository{db: db}
}

func (r *assetRepository) ListFolders(userID string, parentID *string) ([]models.AssetFolder, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if parentID != nil {
		rows, err = r.db.Query(`
			SELECT id, user_id, name, parent_id, created_at
			FROM ads.asset_folders
			WHERE user_id = $1 AND parent_id = $2
			ORDER BY name ASC`, userID, *parentID)
	} else {
		rows, err = r.db.Query(`
			SELECT id, user_id, name, parent_id, created_at
			FROM ads.asset_folders
			WHERE user_id = $1 AND parent_id IS NULL
			ORDER BY name ASC`, userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.AssetFolder
	for rows.Next() {
		var (
			folder models.AssetFolder
			parent sql.NullString
		)
		if err := rows.Scan(&folder.ID, &folder.UserID, &folder.Name, &parent, &folder.CreatedAt); err != nil {
			return nil, err
		}
		if parent.Valid {
			v := parent.String
			folder.ParentID = &v
		}
		folders = append(folders, folder)
	}
	return folders, rows.Err()
}

func (r *assetRepository) CreateFolder(folder *models.AssetFolder) (*models.AssetFolder, error) {
	err := r.db.QueryRow(`
		INSERT INTO ads.asset_folders (user_id, name, parent_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		folder.UserID, folder.Name, folder.ParentID,
	).Scan(&folder.ID, &folder.CreatedAt)
	if err != nil {
		return nil, err
	}
	return folder, nil
}

func (r *assetRepository) RenameFolder(userID, id, name string) (*models.AssetFolder, error) {
	var (
		folder models.AssetFolder
		parent sql.NullString
	)
	err := r.db.QueryRow(`
		UPDATE ads.asset_folders
		SET name = $1
		WHERE id = $2 AND user_id = $3
		RETURNING id, user_id, name, parent_id, created_at`,
		name, id, userID,
	).Scan(&folder.ID, &folder.UserID, &folder.Name, &parent, &folder.CreatedAt)
	if err != nil {
		return nil, err
	}
	if parent.Valid {
		v := parent.String
		folder.ParentID = &v
	}
	return &folder, nil
}

func (r *assetRepository) DeleteFolder(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM ads.asset_folders WHERE id = $1 AND user_id = $2`, id, userID)
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

const assetColumns = `id, user_id, folder_id, name, type, file_name, mime_type, text_content, metadata, created_at`

func (r *assetRepository) List(userID string, folderID *string) ([]models.Asset, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if folderID != nil {
		rows, err = r.db.Query(`
			SELECT `+assetColumns+`
			FROM ads.assets
			WHERE user_id = $1 AND folder_id = $2
			ORDER BY created_at DESC`, userID, *folderID)
	} else {
		rows, err = r.db.Query(`
			SELECT `+assetColumns+`
			FROM ads.assets
			WHERE user_id = $1
			ORDER BY created_at DESC`, userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	return assets, rows.Err()
}

func (r *assetRepository) Get(userID, id string) (*models.Asset, error) {
	asset, err := scanAsset(r.db.QueryRow(`
		SELECT `+assetColumns+`
		FROM ads.assets
		WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Not found
		}
		return nil, err
	}
	return asset, nil
}

func (r *assetRepository) Create(asset *models.Asset) (*models.Asset, error) {
	err := r.db.QueryRow(`
		INSERT INTO ads.assets (user_id, folder_id, name, type, file_name, mime_type, text_content, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, '{}'::jsonb))
		RETURNING id, created_at`,
		asset.UserID, asset.FolderID, asset.Name, asset.Type,
		asset.FileName, asset.MimeType, asset.TextContent, nullableJSON(asset.Metadata),
	).Scan(&asset.ID, &asset.CreatedAt)
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (r *assetRepository) Update(asset *models.Asset) (*models.Asset, error) {
	err := r.db.QueryRow(`
		UPDATE ads.assets
		SET folder_id = $1, name = $2, text_content = $3, metadata = COALESCE($4, metadata)
		WHERE id = $5 AND user_id = $6
		RETURNING created_at`,
		asset.FolderID, asset.Name, asset.TextContent, nullableJSON(asset.Metadata),
		asset.ID, asset.UserID,
	).Scan(&asset.CreatedAt)
	if err != nil {
		return nil, err
	}
	return asset, nil
}

func (r *assetRepository) Delete(userID, id string) error {
	res, err := r.db.Exec(`DELETE FROM ads.assets WHERE id = $1 AND user_id = $2`, id, userID)
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

func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func scanAsset(scanner interface {
	Scan(dest ...interface{}) error
}) (*models.Asset, error) {
	var (
		asset       models.Asset
		folderID    sql.NullString
		fileName    sql.NullString
		mimeType    sql.NullString
		textContent sql.NullString
		metadata    []byte
	)
	if err := scanner.Scan(
		&asset.ID,
		&asset.UserID,
		&folderID,
		&asset.Name,
		&asset.Type,
		&fileName,
		&mimeType,
		&textContent,
		&metadata,
		&asset.CreatedAt,
	); err != nil {
		return nil, err
	}
	if folderID.Valid {
		v := folderID.String
		asset.FolderID = &v
	}
	if fileName.Valid {
		v := fileName.String
		asset.FileName = &v
	}
	if mimeType.Valid {
		v := mimeType.String
		asset.MimeType = &v
	}
	if textContent.Valid {
		v := textContent.String
		asset.TextContent = &v
	}
	if len(metadata) > 0 {
		asset.Metadata = metadata
	}
	return &asset, nil
}
