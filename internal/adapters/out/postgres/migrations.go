package postgres

import (
	"context"
	"fmt"

	"morna/internal/adapters/out/postgres/boxrepo"
	"morna/internal/adapters/out/postgres/containerrepo"
	"morna/internal/adapters/out/postgres/orderrepo"

	"gorm.io/gorm"
)

// ChangeChannel is the LISTEN/NOTIFY channel the row triggers publish on.
const ChangeChannel = "entity_changes"

// ClientDTO is the clients row. Clients are owned by intake; this service only
// reads them, so orders.client_id carries no foreign key.
type ClientDTO struct {
	ID   string `gorm:"type:text;primaryKey"`
	Name string `gorm:"type:text;not null"`
}

func (ClientDTO) TableName() string {
	return "clients"
}

var foreignKeys = []string{
	`DO $$ BEGIN
		ALTER TABLE boxes ADD CONSTRAINT fk_boxes_container
			FOREIGN KEY (container_id) REFERENCES containers (container_id) ON DELETE RESTRICT;
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
	`DO $$ BEGIN
		ALTER TABLE orders ADD CONSTRAINT fk_orders_box
			FOREIGN KEY (box_id) REFERENCES boxes (box_id) ON DELETE RESTRICT;
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$`,
}

// notifyFunction announces a changed row as {table, type, id, at}. The first
// trigger argument names the key column.
var notifyFunction = fmt.Sprintf(`CREATE OR REPLACE FUNCTION notify_entity_change() RETURNS trigger AS $$
DECLARE
	row_id text;
BEGIN
	IF TG_OP = 'DELETE' THEN
		row_id := to_jsonb(OLD) ->> TG_ARGV[0];
	ELSE
		row_id := to_jsonb(NEW) ->> TG_ARGV[0];
	END IF;
	PERFORM pg_notify('%s', json_build_object(
		'table', TG_TABLE_NAME,
		'type', TG_OP,
		'id', row_id,
		'at', now()
	)::text);
	RETURN NULL;
END;
$$ LANGUAGE plpgsql`, ChangeChannel)

var notifyTriggers = map[string]string{
	"orders":     "id",
	"boxes":      "box_id",
	"containers": "container_id",
	"clients":    "id",
}

// Migrate creates or updates the schema, the foreign keys and the change
// notification triggers. It is safe to run on every start.
func Migrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)

	err := db.AutoMigrate(
		&ClientDTO{},
		&containerrepo.ContainerDTO{},
		&boxrepo.BoxDTO{},
		&orderrepo.OrderDTO{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range foreignKeys {
		if err = db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create foreign key: %w", err)
		}
	}

	if err = db.Exec(notifyFunction).Error; err != nil {
		return fmt.Errorf("create notify function: %w", err)
	}

	for table, key := range notifyTriggers {
		trigger := table + "_notify_change"
		stmts := []string{
			fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, trigger, table),
			fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s
				FOR EACH ROW EXECUTE FUNCTION notify_entity_change('%s')`, trigger, table, key),
		}
		for _, stmt := range stmts {
			if err = db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create trigger on %s: %w", table, err)
			}
		}
	}

	return nil
}
