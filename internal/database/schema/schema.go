package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Plants

CREATE TABLE IF NOT EXISTS plants (
    plant_id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    owner_id VARCHAR(64) NOT NULL,
    rarity VARCHAR(16) NOT NULL,
    power INTEGER NOT NULL DEFAULT 1,
    status VARCHAR(16) NOT NULL DEFAULT 'active',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_plants_owner ON plants(owner_id);

-- Farming State
-- One row per plant. active_items holds the applied consumable records as
-- JSONB; last_settled_at is NULL until the first settlement and only moves
-- forward afterwards.

CREATE TABLE IF NOT EXISTS farming_states (
    plant_id UUID PRIMARY KEY REFERENCES plants(plant_id) ON DELETE CASCADE,
    owner_id VARCHAR(64) NOT NULL,
    rarity VARCHAR(16) NOT NULL,
    active_items JSONB NOT NULL DEFAULT '[]'::jsonb,
    farming_started_at TIMESTAMPTZ NOT NULL,
    last_settled_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_farming_states_owner ON farming_states(owner_id);

-- Consumable Inventory

CREATE TABLE IF NOT EXISTS consumable_inventory (
    owner_id VARCHAR(64) NOT NULL,
    consumable_type VARCHAR(16) NOT NULL,
    quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (owner_id, consumable_type)
);

-- Reward Balances

CREATE TABLE IF NOT EXISTS reward_balances (
    owner_id VARCHAR(64) PRIMARY KEY,
    balance DOUBLE PRECISION NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Consumed Payments
-- The unique tx_hash is the replay guard: a transfer proof buys exactly one
-- gated action, ever.

CREATE TABLE IF NOT EXISTS consumed_payments (
    tx_hash VARCHAR(66) PRIMARY KEY,
    purpose VARCHAR(32) NOT NULL,
    consumed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
