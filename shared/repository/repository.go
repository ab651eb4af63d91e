package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/shared/constant"
	"guesthouse/shared/dto"
	"guesthouse/shared/logger"

	"github.com/jmoiron/sqlx"
)

var (
	errRequiredFilter = errors.New("required filter")
)

const (
	argLimit  = "limit"
	argOffset = "offset"
)

type column struct {
	name  string
	table string
	alias string
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
}

// preparer is satisfied by *sqlx.DB and *sqlx.Tx.
type preparer interface {
	PrepareNamedContext(ctx context.Context, query string) (*sqlx.NamedStmt, error)
}

// Repository is the sqlx table gateway every domain repository embeds. T is the row model: its db tags
// name the columns, a table tag moves a column to a joined table, a column tag aliases it, and an optional
// GetJoinQuery method supplies the JOIN clause.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entitas       string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entitasName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entitas:       entitasName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          joinQuery(zero),
		InsertColumns: insertColumns,
	}
}

func joinQuery(model any) string {
	if joiner, ok := model.(interface{ GetJoinQuery() string }); ok {
		return joiner.GetJoinQuery()
	}

	return ""
}

func (repo *Repository[T]) span(ctx context.Context, operation string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, operation))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entitas, err)
}

// getNamed scans one row into dest. found is false when the query returned nothing.
func (repo *Repository[T]) getNamed(ctx context.Context, scope otel.Scope, conn preparer, dest any, query string, args map[string]any) (found bool, err error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := conn.PrepareNamedContext(ctx, query)
	if err != nil {
		return false, repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if args == nil {
		args = map[string]any{}
	}

	err = stmt.GetContext(ctx, dest, args)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, repo.fail(scope, "get data", err)
	}

	return true, nil
}

func (repo *Repository[T]) selectNamed(ctx context.Context, scope otel.Scope, dest any, query string, args map[string]any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		return repo.fail(scope, "prepare statement", err)
	}
	defer stmt.Close()

	if args == nil {
		args = map[string]any{}
	}

	if err = stmt.SelectContext(ctx, dest, args); err != nil {
		return repo.fail(scope, "select data", err)
	}

	return nil
}

func (repo *Repository[T]) execNamed(ctx context.Context, scope otel.Scope, exec execer, action, query string, arg any) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := exec.NamedExecContext(ctx, query, arg); err != nil {
		return repo.fail(scope, action, err)
	}

	return nil
}

func (repo *Repository[T]) insertQuery() string {
	placeholders := make([]string, 0, len(repo.InsertColumns))
	for _, col := range repo.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	ctx, scope := repo.span(ctx, "Insert")
	defer scope.End()

	return repo.execNamed(ctx, scope, repo.db.Write, "insert data", repo.insertQuery(), model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	ctx, scope := repo.span(ctx, "InsertTx")
	defer scope.End()

	return repo.execNamed(ctx, scope, sqltx, "insert data", repo.insertQuery(), model)
}

func (repo *Repository[T]) InsertBulk(ctx context.Context, models []T) error {
	ctx, scope := repo.span(ctx, "InsertBulk")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	return repo.execNamed(ctx, scope, repo.db.Write, "bulk insert data", repo.insertQuery(), models)
}

func (repo *Repository[T]) InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []T) error {
	ctx, scope := repo.span(ctx, "InsertBulkTx")
	defer scope.End()

	if len(models) == 0 {
		return nil
	}

	return repo.execNamed(ctx, scope, sqltx, "bulk insert data", repo.insertQuery(), models)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.span(ctx, "Exist")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return false, errRequiredFilter
	}

	exist := false
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s %s)", repo.table, where)

	if _, err := repo.getNamed(ctx, scope, repo.db.Read, &exist, query, args); err != nil {
		return false, err
	}

	return exist, nil
}

// Get returns the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.span(ctx, "Get")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s", repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where)

	var model T

	_, err := repo.getNamed(ctx, scope, repo.db.Read, &model, query, args)

	return model, err
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.span(ctx, "GetAll")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT %s FROM %s %s %s %s %s",
		repo.getSelectQuery(ctx, columns...), repo.table, repo.join, where, repo.ordering(params), paginate(params, args))

	var models []T

	err := repo.selectNamed(ctx, scope, &models, query, args)

	return models, err
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.span(ctx, "Count")
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)
	query := fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s %s %s", repo.table, repo.primaryColumn, repo.table, repo.join, where)

	var count int

	if _, err := repo.getNamed(ctx, scope, repo.db.Read, &count, query, args); err != nil {
		return 0, err
	}

	return count, nil
}

func (repo *Repository[T]) deleteQuery(ctx context.Context, filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	return fmt.Sprintf("DELETE FROM %s %s", repo.table, where), args, nil
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Delete")
	defer scope.End()

	query, args, err := repo.deleteQuery(ctx, filter)
	if err != nil {
		return err
	}

	return repo.execNamed(ctx, scope, repo.db.Write, "delete data", query, args)
}

func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "DeleteTx")
	defer scope.End()

	query, args, err := repo.deleteQuery(ctx, filter)
	if err != nil {
		return err
	}

	return repo.execNamed(ctx, scope, sqltx, "delete data", query, args)
}

// updateQuery sorts the SET list so the same patch always renders the same statement.
func (repo *Repository[T]) updateQuery(ctx context.Context, mod map[string]any, filter dto.FilterGroup) (string, map[string]any, error) {
	where, args := repo.BuildWhereClause(ctx, filter)
	if where == "" {
		return "", nil, errRequiredFilter
	}

	cols := make([]string, 0, len(mod))
	for col := range mod {
		cols = append(cols, col)
	}

	slices.Sort(cols)

	sets := make([]string, 0, len(cols))
	for _, col := range cols {
		sets = append(sets, fmt.Sprintf("%s = :%s", col, col))
		args[col] = mod[col]
	}

	return fmt.Sprintf("UPDATE %s SET %s %s", repo.table, strings.Join(sets, ", "), where), args, nil
}

func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "Update")
	defer scope.End()

	query, args, err := repo.updateQuery(ctx, mod, filter)
	if err != nil {
		return err
	}

	return repo.execNamed(ctx, scope, repo.db.Write, "update data", query, args)
}

func (repo *Repository[T]) UpdateTx(ctx context.Context, sqltx *sqlx.Tx, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.span(ctx, "UpdateTx")
	defer scope.End()

	query, args, err := repo.updateQuery(ctx, mod, filter)
	if err != nil {
		return err
	}

	return repo.execNamed(ctx, scope, sqltx, "update data", query, args)
}

// WithTransaction runs fn inside a write transaction, committing on success and rolling back otherwise.
func (repo *Repository[T]) WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := repo.span(ctx, "WithTransaction")
	defer scope.End()

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return repo.fail(scope, "begin transaction", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.ErrorWithStack(rbErr)
		}

		scope.TraceIfError(err)

		return err
	}

	if err = tx.Commit(); err != nil {
		return repo.fail(scope, "commit transaction", err)
	}

	return nil
}

// SelectRaw runs a named query against the read pool and scans every row into dest.
func (repo *Repository[T]) SelectRaw(ctx context.Context, dest any, query string, args map[string]any) error {
	ctx, scope := repo.span(ctx, "SelectRaw")
	defer scope.End()

	return repo.selectNamed(ctx, scope, dest, query, args)
}

// GetRawTx runs a single-row named query inside tx, or against the write pool when tx is nil.
// Missing rows are not an error; dest keeps its zero value.
func (repo *Repository[T]) GetRawTx(ctx context.Context, sqltx *sqlx.Tx, dest any, query string, args map[string]any) error {
	ctx, scope := repo.span(ctx, "GetRawTx")
	defer scope.End()

	var conn preparer = repo.db.Write
	if sqltx != nil {
		conn = sqltx
	}

	_, err := repo.getNamed(ctx, scope, conn, dest, query, args)

	return err
}

// SelectColumns renders the select list of T, for hand-written queries over the same table and join.
func (repo *Repository[T]) SelectColumns(ctx context.Context) string {
	return repo.getSelectQuery(ctx)
}

// From renders the table together with its join clause.
func (repo *Repository[T]) From() string {
	return strings.TrimSpace(repo.table + " " + repo.join)
}

func (repo *Repository[T]) ordering(params dto.QueryParams) string {
	if params.SortBy == "" || params.SortDir == "" {
		return ""
	}

	return fmt.Sprintf("ORDER BY %s %s", repo.qualify(params.SortBy), params.SortDir)
}

func paginate(params dto.QueryParams, args map[string]any) string {
	switch {
	case params.Page > 0 && params.Limit > 0:
		args[argLimit] = params.Limit
		args[argOffset] = (params.Page - 1) * params.Limit

		return "LIMIT :limit OFFSET :offset"
	case params.Limit > 0:
		args[argLimit] = params.Limit

		return "LIMIT :limit"
	}

	return ""
}

// qualify prefixes a bare sort column that belongs to the base table, keeping joined queries unambiguous.
func (repo *Repository[T]) qualify(sortBy string) string {
	if strings.Contains(sortBy, ".") {
		return sortBy
	}

	for _, col := range repo.columns {
		if col.alias == "" && col.name == sortBy && col.table == repo.table {
			return repo.table + "." + sortBy
		}
	}

	return sortBy
}

func (repo *Repository[T]) getSelectQuery(_ context.Context, columnsParam ...string) string {
	columns := make([]string, 0, len(repo.columns))

	for _, col := range repo.columns {
		if len(columnsParam) > 0 && !slices.Contains(columnsParam, col.name) {
			continue
		}

		switch {
		case col.table == "":
			columns = append(columns, col.name)
		case col.alias != "":
			columns = append(columns, fmt.Sprintf("%s.%s AS %s", col.table, col.name, col.alias))
		default:
			columns = append(columns, col.table+"."+col.name)
		}
	}

	return strings.Join(columns, ", ")
}

func (repo *Repository[T]) BuildWhereClause(_ context.Context, filter dto.FilterGroup) (string, map[string]any) {
	where, args := filter.GetWhereClause()
	if where == "" {
		return where, map[string]any{}
	}

	return fmt.Sprintf(" WHERE %s ", where), args
}

// getColumns walks the db tags of t, descending into embedded structs such as model.Metadata.
// Only columns of the base table are insertable.
func getColumns(table string, t reflect.Type) (columns []column, insertColumns []string) {
	for i := range t.NumField() {
		field := t.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(table, field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		tableField := field.Tag.Get("table")
		if tableField == "" {
			tableField = table
		}

		if tableField == table {
			insertColumns = append(insertColumns, dbTag)
		}

		if colTag := field.Tag.Get("column"); colTag != "" {
			columns = append(columns, column{name: colTag, table: tableField, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: tableField})
		}
	}

	return columns, insertColumns
}
