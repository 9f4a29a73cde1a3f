package db

import (
	"fmt"

	"gorm.io/gorm"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'user_role') THEN
			CREATE TYPE user_role AS ENUM ('ACCOUNT_MANAGER', 'CLIENT_MANAGER', 'ADMIN');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'contract_status') THEN
			CREATE TYPE contract_status AS ENUM (
				'LIVE', 'REMOVED', 'LOCKED', 'PRICING', 'OBJECTION', 'NEW', 'LOST',
				'EXPIRED', 'FUTURE', 'CONTRACT_REQUESTED', 'AWAITING_DA', 'DUPLICATE',
				'IN_SUPPLIER_BACKLOG', 'DATA_CLEANSE');
		END IF;
		IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'objection_status') THEN
			CREATE TYPE objection_status AS ENUM ('OUTSTANDING', 'PENDING', 'RESOLVED');
		END IF;
	END
	$$;`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(254) NOT NULL UNIQUE,
		first_name VARCHAR(30),
		last_name VARCHAR(30),
		password_hash VARCHAR(128) NOT NULL,
		role user_role NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT FALSE,
		activation_token UUID,
		date_joined TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS clients (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		account_manager_id UUID NOT NULL REFERENCES users(id),
		originator VARCHAR(250),
		client_onboarded DATE,
		loa DATE,
		contract_term VARCHAR(250),
		is_lost BOOLEAN NOT NULL DEFAULT FALSE,
		client_lost_date DATE,
		export_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS utilities (
		id BIGSERIAL PRIMARY KEY,
		utility VARCHAR(25) NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS suppliers (
		id BIGSERIAL PRIMARY KEY,
		supplier VARCHAR(100) NOT NULL UNIQUE,
		meter_email VARCHAR(254),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE TABLE IF NOT EXISTS client_contracts (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES clients(id),
		client_manager_id UUID REFERENCES users(id),
		client_group VARCHAR(255),
		contract_type VARCHAR(20) NOT NULL DEFAULT 'SEAMLESS',
		seamless_updated VARCHAR(3) NOT NULL DEFAULT 'NO',
		contract_status contract_status NOT NULL DEFAULT 'LIVE',
		is_directors_approval VARCHAR(3) NOT NULL DEFAULT 'NO',
		directors_approval_date TIMESTAMPTZ,
		business_name VARCHAR(255) NOT NULL,
		company_reg_number VARCHAR(250),
		utility_id BIGINT NOT NULL REFERENCES utilities(id),
		top_line VARCHAR(40),
		mpan_mpr VARCHAR(255) NOT NULL,
		meter_serial_number VARCHAR(100),
		meter_onboarded DATE,
		meter_status VARCHAR(25) NOT NULL DEFAULT 'ACTIVE',
		building_name VARCHAR(255),
		site_address TEXT,
		billing_address VARCHAR(255),
		supplier_id BIGINT NOT NULL REFERENCES suppliers(id),
		previous_supplier_id BIGINT REFERENCES suppliers(id),
		supplier_changed_date DATE,
		supplier_coding VARCHAR(50),
		contract_start_date DATE,
		contract_end_date DATE,
		lock_in_date DATE,
		supplier_start_date DATE,
		account_number VARCHAR(100),
		eac NUMERIC(10,2),
		day_consumption DOUBLE PRECISION,
		night_consumption DOUBLE PRECISION,
		kva VARCHAR(25),
		vat_rate VARCHAR(30) NOT NULL DEFAULT 'UNKNOWN',
		contract_value NUMERIC(10,2),
		standing_charge NUMERIC(8,4),
		sc_frequency VARCHAR(250),
		unit_rate_1 NUMERIC(9,6),
		unit_rate_2 NUMERIC(9,6),
		unit_rate_3 NUMERIC(9,6),
		feed_in_tariff NUMERIC(8,4),
		seamless_status VARCHAR(50),
		profile VARCHAR(100),
		is_ooc VARCHAR(3) NOT NULL DEFAULT 'NO',
		service_type VARCHAR(50),
		pence_per_kilowatt NUMERIC(8,4),
		day_kilowatt_hour_rate NUMERIC(8,4),
		night_rate NUMERIC(16,8),
		annualised_budget NUMERIC(10,2),
		commission_per_annum NUMERIC(10,3),
		commission_per_unit NUMERIC(10,3),
		commission_per_contract NUMERIC(10,2),
		partner_commission NUMERIC(10,2),
		smart_meter VARCHAR(50),
		vat_declaration_sent VARCHAR(3) NOT NULL DEFAULT 'NO',
		vat_declaration_date DATE,
		vat_declaration_expires DATE,
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_mpan_mpr ON client_contracts (mpan_mpr);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client_id ON client_contracts (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_business_name ON client_contracts (business_name);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON client_contracts (contract_status);`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_end_date ON client_contracts (contract_end_date);`,
	`CREATE TABLE IF NOT EXISTS electricity_commissions (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		eac_from NUMERIC(10,2) NOT NULL,
		eac_to NUMERIC(10,2) NOT NULL,
		commission_per_annum NUMERIC(10,2) NOT NULL,
		commission_per_unit NUMERIC(10,3) NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS gas_commissions (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		eac_from NUMERIC(10,2) NOT NULL,
		eac_to NUMERIC(10,2) NOT NULL,
		commission_per_annum NUMERIC(10,3) NOT NULL,
		commission_per_unit NUMERIC(10,3) NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_electricity_commissions_client ON electricity_commissions (client_id);`,
	`CREATE INDEX IF NOT EXISTS idx_gas_commissions_client ON gas_commissions (client_id);`,
	`CREATE TABLE IF NOT EXISTS objections (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES clients(id),
		account_number VARCHAR(100),
		business_name VARCHAR(255) NOT NULL,
		site_address TEXT NOT NULL,
		mpan_mpr VARCHAR(255) NOT NULL,
		new_supplier_id BIGINT NOT NULL REFERENCES suppliers(id),
		objecting_supplier_id BIGINT NOT NULL REFERENCES suppliers(id),
		registration_date DATE,
		objection_date DATE,
		deadline_date VARCHAR(25),
		potential_start_date VARCHAR(25),
		eac BIGINT,
		is_directors_approval BOOLEAN NOT NULL DEFAULT FALSE,
		objection_status objection_status NOT NULL DEFAULT 'OUTSTANDING',
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE INDEX IF NOT EXISTS idx_objections_mpan_mpr ON objections (mpan_mpr);`,
	`CREATE INDEX IF NOT EXISTS idx_objections_status ON objections (objection_status);`,
	`CREATE TABLE IF NOT EXISTS job_titles (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(250) NOT NULL UNIQUE
	);`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id BIGSERIAL PRIMARY KEY,
		client_id BIGINT NOT NULL REFERENCES clients(id) ON DELETE CASCADE,
		job_title_id BIGINT REFERENCES job_titles(id) ON DELETE SET NULL,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(254) NOT NULL,
		phone_number VARCHAR(16)
	);`,
	`CREATE INDEX IF NOT EXISTS idx_contacts_client ON contacts (client_id);`,
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
