package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/tag"
	"foodgram-backend/internal/infrastructure/database"
	pkgdb "foodgram-backend/pkg/database"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var recipeColumns = []string{
	"r.id", "r.author_id", "r.name", "r.image", "r.text", "r.cooking_time", "r.pub_date",
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) recipe.Repository {
	return &postgresRepository{pool: pool}
}

// ========================================
// WRITES
// ========================================

func (r *postgresRepository) Create(ctx context.Context, rec *recipe.Recipe, tagIDs []int64, lines []recipe.IngredientAmount) error {
	err := pkgdb.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO recipes (author_id, name, image, text, cooking_time)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, pub_date
		`
		err := tx.QueryRow(ctx, query,
			rec.AuthorID, rec.Name, rec.Image, rec.Text, rec.CookingTime,
		).Scan(&rec.ID, &rec.PubDate)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}

		if err := insertTags(ctx, tx, rec.ID, tagIDs); err != nil {
			return err
		}
		return insertIngredients(ctx, tx, rec.ID, lines)
	})
	return mapWriteError(err)
}

func (r *postgresRepository) Update(ctx context.Context, id, authorID int64, c *recipe.Changes) (string, error) {
	oldImage, err := pkgdb.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (string, error) {
		var (
			owner int64
			image string
		)
		err := tx.QueryRow(ctx,
			`SELECT author_id, image FROM recipes WHERE id = $1 FOR UPDATE`, id,
		).Scan(&owner, &image)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", recipe.ErrRecipeNotFound
		}
		if err != nil {
			return "", fmt.Errorf("lock recipe %d: %w", id, err)
		}
		if owner != authorID {
			return "", recipe.ErrNotRecipeAuthor
		}

		if sql, args, ok, err := updateStatement(id, c); err != nil {
			return "", err
		} else if ok {
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return "", fmt.Errorf("update recipe %d: %w", id, err)
			}
		}

		if c.TagIDs != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, id); err != nil {
				return "", fmt.Errorf("clear recipe tags: %w", err)
			}
			if err := insertTags(ctx, tx, id, c.TagIDs); err != nil {
				return "", err
			}
		}

		if c.Ingredients != nil {
			if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, id); err != nil {
				return "", fmt.Errorf("clear recipe ingredients: %w", err)
			}
			if err := insertIngredients(ctx, tx, id, c.Ingredients); err != nil {
				return "", err
			}
		}
		return image, nil
	})
	if err != nil {
		return "", mapWriteError(err)
	}

	if c.Image == nil {
		return "", nil
	}
	return oldImage, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id, authorID int64) (string, error) {
	var image string
	err := r.pool.QueryRow(ctx,
		`DELETE FROM recipes WHERE id = $1 AND author_id = $2 RETURNING image`, id, authorID,
	).Scan(&image)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", recipe.ErrRecipeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("delete recipe %d: %w", id, err)
	}
	return image, nil
}

// updateStatement builds the UPDATE for the scalar columns in c. ok is false
// when c touches none of them.
func updateStatement(id int64, c *recipe.Changes) (string, []interface{}, bool, error) {
	set := map[string]interface{}{}
	if c.Name != nil {
		set["name"] = *c.Name
	}
	if c.Text != nil {
		set["text"] = *c.Text
	}
	if c.CookingTime != nil {
		set["cooking_time"] = *c.CookingTime
	}
	if c.Image != nil {
		set["image"] = *c.Image
	}
	if len(set) == 0 {
		return "", nil, false, nil
	}

	sql, args, err := psql.Update("recipes").SetMap(set).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return "", nil, false, fmt.Errorf("build recipe update: %w", err)
	}
	return sql, args, true, nil
}

func insertTags(ctx context.Context, tx pgx.Tx, recipeID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}
	q := psql.Insert("recipe_tags").Columns("recipe_id", "tag_id")
	for _, id := range tagIDs {
		q = q.Values(recipeID, id)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build tag insert: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert recipe tags: %w", err)
	}
	return nil
}

func insertIngredients(ctx context.Context, tx pgx.Tx, recipeID int64, lines []recipe.IngredientAmount) error {
	if len(lines) == 0 {
		return nil
	}
	q := psql.Insert("recipe_ingredients").Columns("recipe_id", "ingredient_id", "amount")
	for _, line := range lines {
		q = q.Values(recipeID, line.Ref(), line.Amount)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build ingredient insert: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert recipe ingredients: %w", err)
	}
	return nil
}

func mapWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case database.IsForeignKeyViolation(err, "recipe_tags_tag_id_fkey"):
		return recipe.ErrUnknownTag
	case database.IsForeignKeyViolation(err, "recipe_ingredients_ingredient_id_fkey"):
		return recipe.ErrUnknownIngredient
	default:
		return err
	}
}

// ========================================
// READS
// ========================================

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	sql, args, err := psql.Select(recipeColumns...).From("recipes r").Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recipe select: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("find recipe %d: %w", id, err)
	}
	rec, err := pgx.CollectExactlyOneRow(rows, scanRecipe)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, recipe.ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan recipe %d: %w", id, err)
	}
	return &rec, nil
}

// filtered returns the FROM/WHERE part of the list query without columns.
func filtered(f recipe.ListFilter) sq.SelectBuilder {
	q := psql.Select().From("recipes r")

	if len(f.TagSlugs) > 0 {
		q = q.Where(sq.Expr(`EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug = ANY(?))`, f.TagSlugs))
	}
	if f.AuthorID != 0 {
		q = q.Where(sq.Eq{"r.author_id": f.AuthorID})
	}
	if f.ViewerID != 0 && f.Favorited != nil {
		q = q.Where(sq.Expr(membership("favorites", *f.Favorited), f.ViewerID))
	}
	if f.ViewerID != 0 && f.InCart != nil {
		q = q.Where(sq.Expr(membership("shopping_cart", *f.InCart), f.ViewerID))
	}
	return q
}

func membership(table string, want bool) string {
	expr := fmt.Sprintf("EXISTS (SELECT 1 FROM %s m WHERE m.recipe_id = r.id AND m.user_id = ?)", table)
	if !want {
		return "NOT " + expr
	}
	return expr
}

func listStatements(f recipe.ListFilter) (page sq.SelectBuilder, count sq.SelectBuilder) {
	base := filtered(f)
	page = base.Columns(recipeColumns...).
		OrderBy("r.pub_date DESC", "r.id DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
	count = base.Columns("count(*)")
	return page, count
}

func (r *postgresRepository) List(ctx context.Context, f recipe.ListFilter) ([]recipe.Recipe, int64, error) {
	pageQ, countQ := listStatements(f)

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build recipe count: %w", err)
	}
	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}
	if total == 0 {
		return []recipe.Recipe{}, 0, nil
	}

	sql, args, err := pageQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build recipe list: %w", err)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	recipes, err := pgx.CollectRows(rows, scanRecipe)
	if err != nil {
		return nil, 0, fmt.Errorf("scan recipes: %w", err)
	}
	return recipes, total, nil
}

func (r *postgresRepository) TagsFor(ctx context.Context, recipeIDs []int64) (map[int64][]tag.Tag, error) {
	query := `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id = ANY($1)
		ORDER BY rt.recipe_id, t.id
	`
	rows, err := r.pool.Query(ctx, query, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe tags: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]tag.Tag, len(recipeIDs))
	for rows.Next() {
		var recipeID int64
		var t tag.Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("scan recipe tag: %w", err)
		}
		out[recipeID] = append(out[recipeID], t)
	}
	return out, rows.Err()
}

func (r *postgresRepository) IngredientsFor(ctx context.Context, recipeIDs []int64) (map[int64][]recipe.IngredientLine, error) {
	query := `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id = ANY($1)
		ORDER BY ri.recipe_id, ri.id
	`
	rows, err := r.pool.Query(ctx, query, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe ingredients: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]recipe.IngredientLine, len(recipeIDs))
	for rows.Next() {
		var l recipe.IngredientLine
		if err := rows.Scan(&l.RecipeID, &l.IngredientID, &l.Name, &l.MeasurementUnit, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan recipe ingredient: %w", err)
		}
		out[l.RecipeID] = append(out[l.RecipeID], l)
	}
	return out, rows.Err()
}

func (r *postgresRepository) FlagsFor(ctx context.Context, viewerID int64, recipeIDs []int64) (map[int64]recipe.Flags, error) {
	query := `
		SELECT ids.id,
			EXISTS (SELECT 1 FROM favorites f WHERE f.recipe_id = ids.id AND f.user_id = $1),
			EXISTS (SELECT 1 FROM shopping_cart s WHERE s.recipe_id = ids.id AND s.user_id = $1)
		FROM unnest($2::bigint[]) AS ids(id)
	`
	rows, err := r.pool.Query(ctx, query, viewerID, recipeIDs)
	if err != nil {
		return nil, fmt.Errorf("load recipe flags: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]recipe.Flags, len(recipeIDs))
	for rows.Next() {
		var id int64
		var f recipe.Flags
		if err := rows.Scan(&id, &f.Favorited, &f.InCart); err != nil {
			return nil, fmt.Errorf("scan recipe flags: %w", err)
		}
		out[id] = f
	}
	return out, rows.Err()
}

func (r *postgresRepository) ListByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]recipe.Recipe, error) {
	query := `
		SELECT id, author_id, name, image, text, cooking_time, pub_date
		FROM (
			SELECT r.*, row_number() OVER (PARTITION BY r.author_id ORDER BY r.pub_date DESC, r.id DESC) AS rn
			FROM recipes r
			WHERE r.author_id = ANY($1)
		) ranked
		WHERE $2::int <= 0 OR rn <= $2::int
		ORDER BY author_id, rn
	`
	rows, err := r.pool.Query(ctx, query, authorIDs, limit)
	if err != nil {
		return nil, fmt.Errorf("list recipes by authors: %w", err)
	}
	recipes, err := pgx.CollectRows(rows, scanRecipe)
	if err != nil {
		return nil, fmt.Errorf("scan recipes by authors: %w", err)
	}

	out := make(map[int64][]recipe.Recipe, len(authorIDs))
	for _, rec := range recipes {
		out[rec.AuthorID] = append(out[rec.AuthorID], rec)
	}
	return out, nil
}

func (r *postgresRepository) CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT author_id, count(*) FROM recipes WHERE author_id = ANY($1) GROUP BY author_id`, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("count recipes by authors: %w", err)
	}
	defer rows.Close()

	out := make(map[int64]int64, len(authorIDs))
	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan recipe count: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}

// ========================================
// FAVORITES / SHOPPING CART
// ========================================

func (r *postgresRepository) AddFavorite(ctx context.Context, userID, recipeID int64) (bool, error) {
	return r.addRelation(ctx, "favorites", userID, recipeID)
}

func (r *postgresRepository) RemoveFavorite(ctx context.Context, userID, recipeID int64) (bool, error) {
	return r.removeRelation(ctx, "favorites", userID, recipeID)
}

func (r *postgresRepository) AddToCart(ctx context.Context, userID, recipeID int64) (bool, error) {
	return r.addRelation(ctx, "shopping_cart", userID, recipeID)
}

func (r *postgresRepository) RemoveFromCart(ctx context.Context, userID, recipeID int64) (bool, error) {
	return r.removeRelation(ctx, "shopping_cart", userID, recipeID)
}

// addRelation relies on the (user_id, recipe_id) unique constraint: zero
// inserted rows means the pair already exists.
func (r *postgresRepository) addRelation(ctx context.Context, table string, userID, recipeID int64) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, recipe_id) VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT %s_unique DO NOTHING
	`, table, table)

	cmd, err := r.pool.Exec(ctx, query, userID, recipeID)
	if database.IsForeignKeyViolation(err, table+"_recipe_id_fkey") {
		return false, recipe.ErrRecipeNotFound
	}
	if err != nil {
		return false, fmt.Errorf("insert into %s: %w", table, err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *postgresRepository) removeRelation(ctx context.Context, table string, userID, recipeID int64) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1 AND recipe_id = $2`, table)

	cmd, err := r.pool.Exec(ctx, query, userID, recipeID)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *postgresRepository) ShoppingList(ctx context.Context, userID int64) ([]recipe.ShoppingItem, error) {
	query := `
		SELECT i.name, i.measurement_unit, SUM(ri.amount) AS total
		FROM shopping_cart sc
		JOIN recipe_ingredients ri ON ri.recipe_id = sc.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sc.user_id = $1
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name, i.measurement_unit
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (recipe.ShoppingItem, error) {
		var it recipe.ShoppingItem
		err := row.Scan(&it.Name, &it.MeasurementUnit, &it.Amount)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan shopping list: %w", err)
	}
	return items, nil
}

func scanRecipe(row pgx.CollectableRow) (recipe.Recipe, error) {
	var rec recipe.Recipe
	err := row.Scan(&rec.ID, &rec.AuthorID, &rec.Name, &rec.Image, &rec.Text, &rec.CookingTime, &rec.PubDate)
	return rec, err
}
