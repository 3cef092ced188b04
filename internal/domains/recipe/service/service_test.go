package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-backend/internal/domains/recipe"
	"foodgram-backend/internal/domains/tag"
	user "foodgram-backend/internal/domains/user"
	"foodgram-backend/internal/infrastructure/storage"
	"foodgram-backend/internal/shared/pagination"
	"foodgram-backend/internal/shared/response"
)

// ========================================
// FAKES
// ========================================

type fakeIngredient struct {
	name string
	unit string
}

type fakeRepo struct {
	mu sync.Mutex

	tags        map[int64]tag.Tag
	ingredients map[int64]fakeIngredient

	recipes     map[int64]*recipe.Recipe
	recipeTags  map[int64][]int64
	recipeLines map[int64][]recipe.IngredientAmount
	favorites   map[[2]int64]bool
	cart        map[[2]int64]bool
	nextID      int64

	flagQueries int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		tags: map[int64]tag.Tag{
			1: {ID: 1, Name: "Breakfast", Color: "#E26C2D", Slug: "breakfast"},
			2: {ID: 2, Name: "Dinner", Color: "#49B64E", Slug: "dinner"},
		},
		ingredients: map[int64]fakeIngredient{
			10: {name: "sugar", unit: "g"},
			11: {name: "milk", unit: "ml"},
			12: {name: "flour", unit: "g"},
		},
		recipes:     map[int64]*recipe.Recipe{},
		recipeTags:  map[int64][]int64{},
		recipeLines: map[int64][]recipe.IngredientAmount{},
		favorites:   map[[2]int64]bool{},
		cart:        map[[2]int64]bool{},
	}
}

func (f *fakeRepo) checkRefs(tagIDs []int64, lines []recipe.IngredientAmount) error {
	for _, id := range tagIDs {
		if _, ok := f.tags[id]; !ok {
			return recipe.ErrUnknownTag
		}
	}
	for _, l := range lines {
		if _, ok := f.ingredients[l.Ref()]; !ok {
			return recipe.ErrUnknownIngredient
		}
	}
	return nil
}

func (f *fakeRepo) Create(_ context.Context, r *recipe.Recipe, tagIDs []int64, lines []recipe.IngredientAmount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkRefs(tagIDs, lines); err != nil {
		return err
	}
	f.nextID++
	r.ID = f.nextID
	r.PubDate = time.Now().Add(time.Duration(r.ID) * time.Second)
	cp := *r
	f.recipes[r.ID] = &cp
	f.recipeTags[r.ID] = append([]int64(nil), tagIDs...)
	f.recipeLines[r.ID] = append([]recipe.IngredientAmount(nil), lines...)
	return nil
}

func (f *fakeRepo) Update(_ context.Context, id, authorID int64, c *recipe.Changes) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return "", recipe.ErrRecipeNotFound
	}
	if r.AuthorID != authorID {
		return "", recipe.ErrNotRecipeAuthor
	}
	if err := f.checkRefs(c.TagIDs, c.Ingredients); err != nil {
		return "", err
	}
	if c.Name != nil {
		r.Name = *c.Name
	}
	if c.Text != nil {
		r.Text = *c.Text
	}
	if c.CookingTime != nil {
		r.CookingTime = *c.CookingTime
	}
	if c.TagIDs != nil {
		f.recipeTags[id] = c.TagIDs
	}
	if c.Ingredients != nil {
		f.recipeLines[id] = c.Ingredients
	}
	old := ""
	if c.Image != nil {
		old = r.Image
		r.Image = *c.Image
	}
	return old, nil
}

func (f *fakeRepo) Delete(_ context.Context, id, authorID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok || r.AuthorID != authorID {
		return "", recipe.ErrRecipeNotFound
	}
	delete(f.recipes, id)
	delete(f.recipeTags, id)
	delete(f.recipeLines, id)
	for k := range f.favorites {
		if k[1] == id {
			delete(f.favorites, k)
		}
	}
	for k := range f.cart {
		if k[1] == id {
			delete(f.cart, k)
		}
	}
	return r.Image, nil
}

func (f *fakeRepo) FindByID(_ context.Context, id int64) (*recipe.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, flt recipe.ListFilter) ([]recipe.Recipe, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []recipe.Recipe
	for _, r := range f.recipes {
		if flt.AuthorID != 0 && r.AuthorID != flt.AuthorID {
			continue
		}
		if flt.Favorited != nil && f.favorites[[2]int64{flt.ViewerID, r.ID}] != *flt.Favorited {
			continue
		}
		if flt.InCart != nil && f.cart[[2]int64{flt.ViewerID, r.ID}] != *flt.InCart {
			continue
		}
		all = append(all, *r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if flt.Offset >= len(all) {
		return []recipe.Recipe{}, total, nil
	}
	end := flt.Offset + flt.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[flt.Offset:end], total, nil
}

func (f *fakeRepo) TagsFor(_ context.Context, ids []int64) (map[int64][]tag.Tag, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int64][]tag.Tag{}
	for _, id := range ids {
		for _, tid := range f.recipeTags[id] {
			out[id] = append(out[id], f.tags[tid])
		}
	}
	return out, nil
}

func (f *fakeRepo) IngredientsFor(_ context.Context, ids []int64) (map[int64][]recipe.IngredientLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int64][]recipe.IngredientLine{}
	for _, id := range ids {
		for _, l := range f.recipeLines[id] {
			ing := f.ingredients[l.Ref()]
			out[id] = append(out[id], recipe.IngredientLine{
				RecipeID: id, IngredientID: l.Ref(), Name: ing.name, MeasurementUnit: ing.unit, Amount: l.Amount,
			})
		}
	}
	return out, nil
}

func (f *fakeRepo) FlagsFor(_ context.Context, viewerID int64, ids []int64) (map[int64]recipe.Flags, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flagQueries++
	out := map[int64]recipe.Flags{}
	for _, id := range ids {
		out[id] = recipe.Flags{
			Favorited: f.favorites[[2]int64{viewerID, id}],
			InCart:    f.cart[[2]int64{viewerID, id}],
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByAuthors(_ context.Context, authorIDs []int64, limit int) (map[int64][]recipe.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int64][]recipe.Recipe{}
	for _, a := range authorIDs {
		var list []recipe.Recipe
		for _, r := range f.recipes {
			if r.AuthorID == a {
				list = append(list, *r)
			}
		}
		sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
		if limit > 0 && len(list) > limit {
			list = list[:limit]
		}
		out[a] = list
	}
	return out, nil
}

func (f *fakeRepo) CountByAuthors(_ context.Context, authorIDs []int64) (map[int64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[int64]int64{}
	for _, r := range f.recipes {
		out[r.AuthorID]++
	}
	return out, nil
}

func (f *fakeRepo) toggle(set map[[2]int64]bool, userID, recipeID int64, add bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[recipeID]; !ok {
		return false, recipe.ErrRecipeNotFound
	}
	key := [2]int64{userID, recipeID}
	if set[key] == add {
		return false, nil
	}
	if add {
		set[key] = true
	} else {
		delete(set, key)
	}
	return true, nil
}

func (f *fakeRepo) AddFavorite(_ context.Context, u, r int64) (bool, error) {
	return f.toggle(f.favorites, u, r, true)
}

func (f *fakeRepo) RemoveFavorite(_ context.Context, u, r int64) (bool, error) {
	return f.toggle(f.favorites, u, r, false)
}

func (f *fakeRepo) AddToCart(_ context.Context, u, r int64) (bool, error) {
	return f.toggle(f.cart, u, r, true)
}

func (f *fakeRepo) RemoveFromCart(_ context.Context, u, r int64) (bool, error) {
	return f.toggle(f.cart, u, r, false)
}

func (f *fakeRepo) ShoppingList(_ context.Context, userID int64) ([]recipe.ShoppingItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sums := map[fakeIngredient]int64{}
	for key := range f.cart {
		if key[0] != userID {
			continue
		}
		for _, l := range f.recipeLines[key[1]] {
			sums[f.ingredients[l.Ref()]] += int64(l.Amount)
		}
	}
	var out []recipe.ShoppingItem
	for ing, sum := range sums {
		out = append(out, recipe.ShoppingItem{Name: ing.name, MeasurementUnit: ing.unit, Amount: sum})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].MeasurementUnit < out[j].MeasurementUnit
	})
	return out, nil
}

type fakeAuthors struct{}

func (fakeAuthors) Present(_ context.Context, viewerID int64, ids []int64) (map[int64]user.UserResponse, error) {
	out := map[int64]user.UserResponse{}
	for _, id := range ids {
		out[id] = user.UserResponse{ID: id, Username: "author", IsSubscribed: viewerID != 0 && viewerID != id}
	}
	return out, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *fakeStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) URL(key string) string {
	return "/media/" + key
}

// ========================================
// HELPERS
// ========================================

const (
	alice int64 = 1
	bob   int64 = 2
)

func newTestService(t *testing.T) (recipe.Service, *fakeRepo, *fakeStorage) {
	t.Helper()
	repo := newFakeRepo()
	store := &fakeStorage{objects: map[string][]byte{}}
	return NewRecipeService(repo, fakeAuthors{}, store, storage.NewImageProcessor()), repo, store
}

func pngDataURI(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func validRequest(t *testing.T) recipe.CreateRecipeRequest {
	return recipe.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Image:       pngDataURI(t),
		Tags:        []int64{1},
		Ingredients: []recipe.IngredientAmount{{ID: 10, Amount: 200}, {IngredientID: 11, Amount: 300}},
	}
}

func create(t *testing.T, svc recipe.Service, author int64) *recipe.RecipeResponse {
	t.Helper()
	out, err := svc.Create(context.Background(), author, validRequest(t))
	require.NoError(t, err)
	return out
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validation.Errors
	require.ErrorAs(t, err, &verrs)
	return response.FieldErrors(err)
}

// ========================================
// TESTS
// ========================================

func TestCreate(t *testing.T) {
	svc, _, store := newTestService(t)

	out := create(t, svc, alice)

	assert.Equal(t, "Pancakes", out.Name)
	assert.Equal(t, alice, out.Author.ID)
	require.Len(t, out.Tags, 1)
	assert.Equal(t, "breakfast", out.Tags[0].Slug)
	require.Len(t, out.Ingredients, 2)
	assert.Equal(t, recipe.IngredientLineResponse{ID: 10, Name: "sugar", MeasurementUnit: "g", Amount: 200}, out.Ingredients[0])
	assert.Equal(t, int64(11), out.Ingredients[1].ID)
	assert.False(t, out.IsFavorited)
	assert.False(t, out.IsInShoppingCart)

	require.Len(t, store.objects, 1)
	assert.True(t, strings.HasPrefix(out.Image, "/media/recipes/images/"))
	assert.True(t, strings.HasSuffix(out.Image, ".jpg"))
}

func TestCreate_Bounds(t *testing.T) {
	svc, _, _ := newTestService(t)

	for _, tc := range []struct {
		cooking, amount int
		field           string
	}{
		{0, 10, "cooking_time"},
		{32001, 10, "cooking_time"},
		{10, 0, "ingredients.0.amount"},
		{10, 32001, "ingredients.0.amount"},
	} {
		req := validRequest(t)
		req.CookingTime = tc.cooking
		req.Ingredients[0].Amount = tc.amount

		_, err := svc.Create(context.Background(), alice, req)
		assert.Contains(t, fieldErrors(t, err), tc.field)
	}

	req := validRequest(t)
	req.CookingTime = 32000
	req.Ingredients[0].Amount = 1
	_, err := svc.Create(context.Background(), alice, req)
	assert.NoError(t, err)
}

func TestCreate_RejectsEmptyAndDuplicateLists(t *testing.T) {
	svc, _, _ := newTestService(t)

	req := validRequest(t)
	req.Tags = nil
	req.Ingredients = []recipe.IngredientAmount{{ID: 10, Amount: 1}, {IngredientID: 10, Amount: 2}}

	_, err := svc.Create(context.Background(), alice, req)
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "tags")
	assert.Contains(t, errs, "ingredients")
}

func TestCreate_MalformedDataURI(t *testing.T) {
	svc, _, store := newTestService(t)

	req := validRequest(t)
	req.Image = "data:image/png;base64,%%%"
	_, err := svc.Create(context.Background(), alice, req)

	assert.Contains(t, fieldErrors(t, err), "image")
	assert.Empty(t, store.objects)
}

func TestCreate_MultipartFileWins(t *testing.T) {
	svc, _, _ := newTestService(t)

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(pngDataURI(t), "data:image/png;base64,"))
	require.NoError(t, err)

	req := validRequest(t)
	req.Image = ""
	req.ImageFile = raw
	_, err = svc.Create(context.Background(), alice, req)
	assert.NoError(t, err)
}

func TestCreate_UnknownTagRollsBackImage(t *testing.T) {
	svc, repo, store := newTestService(t)

	req := validRequest(t)
	req.Tags = []int64{99}
	_, err := svc.Create(context.Background(), alice, req)

	assert.Contains(t, fieldErrors(t, err), "tags")
	assert.Empty(t, repo.recipes)
	assert.Empty(t, store.objects)
}

func TestUpdate_ReplacesIngredients(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	r := create(t, svc, alice)

	_, err := svc.Update(ctx, alice, r.ID, recipe.UpdateRecipeRequest{
		Ingredients: []recipe.IngredientAmount{{ID: 11, Amount: 5}},
	})
	require.NoError(t, err)

	out, err := svc.Update(ctx, alice, r.ID, recipe.UpdateRecipeRequest{
		Ingredients: []recipe.IngredientAmount{{ID: 12, Amount: 7}},
	})
	require.NoError(t, err)

	require.Len(t, out.Ingredients, 1)
	assert.Equal(t, int64(12), out.Ingredients[0].ID)
	assert.Equal(t, "Pancakes", out.Name)
	assert.Len(t, out.Tags, 1)
}

func TestUpdate_PartialAndImage(t *testing.T) {
	ctx := context.Background()
	svc, _, store := newTestService(t)
	r := create(t, svc, alice)

	name := "Crepes"
	image := pngDataURI(t)
	out, err := svc.Update(ctx, alice, r.ID, recipe.UpdateRecipeRequest{Name: &name, Image: &image, Tags: []int64{2, 1}})
	require.NoError(t, err)

	assert.Equal(t, "Crepes", out.Name)
	assert.Equal(t, "Mix and fry.", out.Text)
	assert.NotEqual(t, r.Image, out.Image)
	assert.Len(t, out.Tags, 2)
	assert.Len(t, store.objects, 1)
}

func TestUpdate_EmptyListsRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	r := create(t, svc, alice)

	_, err := svc.Update(context.Background(), alice, r.ID, recipe.UpdateRecipeRequest{
		Tags:        []int64{},
		Ingredients: []recipe.IngredientAmount{},
	})
	errs := fieldErrors(t, err)
	assert.Contains(t, errs, "tags")
	assert.Contains(t, errs, "ingredients")
}

func TestUpdateDelete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	r := create(t, svc, alice)

	name := "Stolen"
	_, err := svc.Update(ctx, bob, r.ID, recipe.UpdateRecipeRequest{Name: &name})
	assert.ErrorIs(t, err, recipe.ErrNotRecipeAuthor)

	assert.ErrorIs(t, svc.Delete(ctx, bob, r.ID), recipe.ErrNotRecipeAuthor)

	_, err = svc.Update(ctx, alice, 404, recipe.UpdateRecipeRequest{Name: &name})
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestDelete_CascadesAndRemovesImage(t *testing.T) {
	ctx := context.Background()
	svc, repo, store := newTestService(t)
	r := create(t, svc, alice)
	_, err := svc.AddFavorite(ctx, bob, r.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, bob, r.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, alice, r.ID))

	assert.Empty(t, repo.recipeLines)
	assert.Empty(t, repo.favorites)
	assert.Empty(t, repo.cart)
	assert.Empty(t, store.objects)

	_, err = svc.Get(ctx, alice, r.ID)
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
}

func TestFavoriteToggle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	r := create(t, svc, alice)

	short, err := svc.AddFavorite(ctx, bob, r.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ShortRecipeResponse{ID: r.ID, Name: "Pancakes", Image: r.Image, CookingTime: 20}, *short)

	_, err = svc.AddFavorite(ctx, bob, r.ID)
	assert.ErrorIs(t, err, recipe.ErrAlreadyFavorited)

	assert.NoError(t, svc.RemoveFavorite(ctx, bob, r.ID))
	assert.ErrorIs(t, svc.RemoveFavorite(ctx, bob, r.ID), recipe.ErrNotFavorited)

	_, err = svc.AddFavorite(ctx, bob, 404)
	assert.ErrorIs(t, err, recipe.ErrRecipeNotFound)
	assert.ErrorIs(t, svc.RemoveFromCart(ctx, bob, 404), recipe.ErrRecipeNotFound)
}

func TestCartToggle(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	r := create(t, svc, alice)

	_, err := svc.AddToCart(ctx, bob, r.ID)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, bob, r.ID)
	assert.ErrorIs(t, err, recipe.ErrAlreadyInCart)
	assert.NoError(t, svc.RemoveFromCart(ctx, bob, r.ID))
	assert.ErrorIs(t, svc.RemoveFromCart(ctx, bob, r.ID), recipe.ErrNotInCart)
}

func TestGet_ViewerFlags(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	r := create(t, svc, alice)
	_, err := svc.AddFavorite(ctx, bob, r.ID)
	require.NoError(t, err)

	asBob, err := svc.Get(ctx, bob, r.ID)
	require.NoError(t, err)
	assert.True(t, asBob.IsFavorited)
	assert.False(t, asBob.IsInShoppingCart)
	assert.True(t, asBob.Author.IsSubscribed)

	queries := repo.flagQueries
	anon, err := svc.Get(ctx, 0, r.ID)
	require.NoError(t, err)
	assert.False(t, anon.IsFavorited)
	assert.False(t, anon.Author.IsSubscribed)
	assert.Equal(t, queries, repo.flagQueries)
}

func TestList_FiltersAndAnonymous(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)
	first := create(t, svc, alice)
	second := create(t, svc, bob)
	_, err := svc.AddFavorite(ctx, bob, first.ID)
	require.NoError(t, err)

	page := pagination.Params{Page: 1, Limit: 6}
	yes := true

	all, total, err := svc.List(ctx, 0, recipe.ListQuery{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, second.ID, all[0].ID)

	favs, total, err := svc.List(ctx, bob, recipe.ListQuery{Favorited: &yes}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, first.ID, favs[0].ID)

	anon, total, err := svc.List(ctx, 0, recipe.ListQuery{Favorited: &yes}, page)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, anon)

	byAuthor, _, err := svc.List(ctx, 0, recipe.ListQuery{AuthorID: bob}, page)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, second.ID, byAuthor[0].ID)
}

func TestExportShoppingList_SumsAcrossRecipes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	first := validRequest(t)
	first.Ingredients = []recipe.IngredientAmount{{ID: 10, Amount: 200}, {ID: 11, Amount: 100}}
	r1, err := svc.Create(ctx, alice, first)
	require.NoError(t, err)

	second := validRequest(t)
	second.Ingredients = []recipe.IngredientAmount{{ID: 10, Amount: 150}}
	r2, err := svc.Create(ctx, alice, second)
	require.NoError(t, err)

	for _, id := range []int64{r1.ID, r2.ID} {
		_, err := svc.AddToCart(ctx, bob, id)
		require.NoError(t, err)
	}

	out, err := svc.ExportShoppingList(ctx, bob, "")
	require.NoError(t, err)
	assert.Equal(t, "shopping_cart.txt", out.Filename)
	assert.Equal(t, "milk - 100 ml\nsugar - 350 g\n", string(out.Body))

	xlsx, err := svc.ExportShoppingList(ctx, bob, "xlsx")
	require.NoError(t, err)
	assert.Equal(t, "shopping_cart.xlsx", xlsx.Filename)
	assert.NotEmpty(t, xlsx.Body)

	_, err = svc.ExportShoppingList(ctx, bob, "pdf")
	assert.Contains(t, fieldErrors(t, err), "format")
}

func TestAuthorPreviews(t *testing.T) {
	svc, _, _ := newTestService(t)
	for i := 0; i < 3; i++ {
		create(t, svc, alice)
	}

	previews, counts, err := svc.AuthorPreviews(context.Background(), []int64{alice, bob}, 2)
	require.NoError(t, err)
	assert.Len(t, previews[alice], 2)
	assert.Equal(t, int64(3), previews[alice][0].ID)
	assert.NotNil(t, previews[bob])
	assert.Empty(t, previews[bob])
	assert.Equal(t, int64(3), counts[alice])
	assert.Zero(t, counts[bob])
}
