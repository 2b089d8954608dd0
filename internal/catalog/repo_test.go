package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPgErrorClassification(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "brands_name_key"}
	fk := &pgconn.PgError{Code: "23503", ConstraintName: "products_brand_id_fkey"}

	if !isUniqueViolation(unique) {
		t.Fatal("23505 not classified as unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert brand: %w", unique)) {
		t.Fatal("wrapped 23505 not classified")
	}
	if isUniqueViolation(fk) {
		t.Fatal("23503 misclassified as unique violation")
	}
	if !isFKViolation(fk) {
		t.Fatal("23503 not classified as fk violation")
	}
	if isFKViolation(nil) || isUniqueViolation(nil) {
		t.Fatal("nil error classified as violation")
	}
	if isUniqueViolation(errors.New("plain")) {
		t.Fatal("plain error classified as violation")
	}
}
