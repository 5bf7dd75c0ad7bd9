package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifiesWrappedPgErrors(t *testing.T) {
	unique := fmt.Errorf("insert admin: %w", &pgconn.PgError{Code: CodeUniqueViolation, ConstraintName: "admins_username_key"})
	fk := fmt.Errorf("delete branch: %w", &pgconn.PgError{Code: CodeForeignKeyViolation})

	if !IsUniqueViolation(unique) || IsForeignKeyViolation(unique) {
		t.Fatal("unique violation misclassified")
	}
	if !IsForeignKeyViolation(fk) || IsUniqueViolation(fk) {
		t.Fatal("foreign key violation misclassified")
	}
	if !IsDuplicateConstraintError(unique, "admins_username_key") {
		t.Fatal("constraint name should match")
	}
	if IsDuplicateConstraintError(unique, "admins_email_key") {
		t.Fatal("different constraint must not match")
	}
	if IsUniqueViolation(errors.New("plain")) {
		t.Fatal("plain error is not a pg error")
	}
}
