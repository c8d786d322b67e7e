package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/petalforge/grovetender/internal/domain"
	"github.com/petalforge/grovetender/internal/repository"
)

const selectPlant = `
	SELECT plant_id, owner_id, rarity, power, status, created_at, updated_at
	FROM plants
	WHERE plant_id = $1
`

// PlantRepository implements the plant repository for PostgreSQL
type PlantRepository struct {
	db *pgxpool.Pool
}

// NewPlantRepository creates a new plant repository
func NewPlantRepository(db *pgxpool.Pool) *PlantRepository {
	return &PlantRepository{db: db}
}

// GetPlant retrieves a plant by id
func (r *PlantRepository) GetPlant(ctx context.Context, plantID string) (*domain.Plant, error) {
	plant, err := fetchPlant(ctx, r.db, plantID, selectPlant)
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get plant: %w", err)
	}
	return plant, nil
}

// GetPlantsByOwner lists a user's plants, burned ones included
func (r *PlantRepository) GetPlantsByOwner(ctx context.Context, ownerID string) ([]domain.Plant, error) {
	query := `
		SELECT plant_id, owner_id, rarity, power, status, created_at, updated_at
		FROM plants
		WHERE owner_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	var plants []domain.Plant
	for rows.Next() {
		var (
			id    uuid.UUID
			plant domain.Plant
		)
		if err := rows.Scan(&id, &plant.OwnerID, &plant.Rarity, &plant.Power, &plant.Status, &plant.CreatedAt, &plant.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		plant.ID = id.String()
		plants = append(plants, plant)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plants, nil
}

// CreatePlant inserts a new plant. A zero ID lets the database assign one;
// the assigned ID is written back to the struct.
func (r *PlantRepository) CreatePlant(ctx context.Context, plant *domain.Plant) error {
	if plant.ID == "" {
		query := `
			INSERT INTO plants (owner_id, rarity, power, status)
			VALUES ($1, $2, $3, $4)
			RETURNING plant_id, created_at, updated_at
		`
		var id uuid.UUID
		err := r.db.QueryRow(ctx, query, plant.OwnerID, plant.Rarity, plant.Power, plant.Status).
			Scan(&id, &plant.CreatedAt, &plant.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create plant: %w", err)
		}
		plant.ID = id.String()
		return nil
	}

	plantUUID, err := parsePlantUUID(plant.ID)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO plants (plant_id, owner_id, rarity, power, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err = r.db.QueryRow(ctx, query, plantUUID, plant.OwnerID, plant.Rarity, plant.Power, plant.Status).
		Scan(&plant.CreatedAt, &plant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create plant: %w", err)
	}
	return nil
}

// BeginTx starts a transaction and returns a PlantTx
func (r *PlantRepository) BeginTx(ctx context.Context) (repository.PlantTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin plant transaction: %w", err)
	}
	return &plantTx{tx: tx}, nil
}

// plantTx implements repository.PlantTx
type plantTx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *plantTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction
func (t *plantTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetPlantWithLock retrieves a plant with FOR UPDATE lock
func (t *plantTx) GetPlantWithLock(ctx context.Context, plantID string) (*domain.Plant, error) {
	plant, err := fetchPlant(ctx, t.tx, plantID, selectPlant+" FOR UPDATE")
	if err != nil {
		if errors.Is(err, domain.ErrPlantNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get plant with lock: %w", err)
	}
	return plant, nil
}

// UpdatePlant persists power and status changes
func (t *plantTx) UpdatePlant(ctx context.Context, plant *domain.Plant) error {
	plantUUID, err := parsePlantUUID(plant.ID)
	if err != nil {
		return err
	}

	query := `
		UPDATE plants
		SET power = $2, status = $3, updated_at = NOW()
		WHERE plant_id = $1
	`

	tag, err := t.tx.Exec(ctx, query, plantUUID, plant.Power, plant.Status)
	if err != nil {
		return fmt.Errorf("failed to update plant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlantNotFound
	}
	return nil
}

// MarkPaymentConsumed records a transaction hash as spent
func (t *plantTx) MarkPaymentConsumed(ctx context.Context, txHash, purpose string) error {
	return markPaymentConsumed(ctx, t.tx, txHash, purpose)
}

// fetchPlant is a helper to fetch and map a plant with common logic
func fetchPlant(ctx context.Context, q querier, plantID, query string) (*domain.Plant, error) {
	plantUUID, err := parsePlantUUID(plantID)
	if err != nil {
		return nil, err
	}

	var (
		id    uuid.UUID
		plant domain.Plant
	)
	err = q.QueryRow(ctx, query, plantUUID).Scan(
		&id,
		&plant.OwnerID,
		&plant.Rarity,
		&plant.Power,
		&plant.Status,
		&plant.CreatedAt,
		&plant.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, err
	}

	plant.ID = id.String()
	return &plant, nil
}
