package services

import (
	"context"
	"sync"
	"time"

	"pharmatrace/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// In-memory repository implementations backing the service tests. They
// honor the repository contract: single-row misses return
// gorm.ErrRecordNotFound, list lookups return empty slices.

type memRegistryRepo struct {
	mu         sync.Mutex
	admin      string
	approvers  map[string]bool
	ingredient map[string]*models.IngredientCertification
	formCerts  map[string]*models.FormulationCertification
}

func newMemRegistryRepo(admin string) *memRegistryRepo {
	return &memRegistryRepo{
		admin:      admin,
		approvers:  make(map[string]bool),
		ingredient: make(map[string]*models.IngredientCertification),
		formCerts:  make(map[string]*models.FormulationCertification),
	}
}

func (r *memRegistryRepo) GetAdmin(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.admin == "" {
		return "", gorm.ErrRecordNotFound
	}
	return r.admin, nil
}

func (r *memRegistryRepo) SetAdmin(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admin = identity
	return nil
}

func (r *memRegistryRepo) IsApprover(ctx context.Context, identity string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.approvers[identity], nil
}

func (r *memRegistryRepo) AddApprover(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.approvers[identity] = true
	return nil
}

func (r *memRegistryRepo) RemoveApprover(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.approvers, identity)
	return nil
}

func (r *memRegistryRepo) CountAdmins(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.admin == "" {
		return 0, nil
	}
	return 1, nil
}

func (r *memRegistryRepo) GetIngredientCertification(ctx context.Context, identity string) (*models.IngredientCertification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cert, ok := r.ingredient[identity]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *cert
	return &copied, nil
}

func (r *memRegistryRepo) UpsertIngredientCertification(ctx context.Context, cert *models.IngredientCertification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cert
	r.ingredient[cert.Identity] = &copied
	return nil
}

func (r *memRegistryRepo) DeleteIngredientCertification(ctx context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ingredient, identity)
	return nil
}

func (r *memRegistryRepo) ListAPICertificationsExpiringBefore(ctx context.Context, epoch int64) ([]*models.IngredientCertification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.IngredientCertification
	for _, cert := range r.ingredient {
		if cert.Kind == "API" && cert.PatentExpiry > 0 && cert.PatentExpiry < epoch {
			copied := *cert
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memRegistryRepo) GetFormulationCertification(ctx context.Context, formulationIdentity string) (*models.FormulationCertification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cert, ok := r.formCerts[formulationIdentity]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *cert
	return &copied, nil
}

func (r *memRegistryRepo) UpsertFormulationCertification(ctx context.Context, cert *models.FormulationCertification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *cert
	r.formCerts[cert.FormulationIdentity] = &copied
	return nil
}

type memFormulationRepo struct {
	mu           sync.Mutex
	formulations map[string]*models.Formulation
	order        []string
}

func newMemFormulationRepo() *memFormulationRepo {
	return &memFormulationRepo{formulations: make(map[string]*models.Formulation)}
}

func (r *memFormulationRepo) Create(ctx context.Context, formulation *models.Formulation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *formulation
	r.formulations[formulation.Identity] = &copied
	r.order = append(r.order, formulation.Identity)
	return nil
}

func (r *memFormulationRepo) GetByIdentity(ctx context.Context, identity string) (*models.Formulation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	formulation, ok := r.formulations[identity]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *formulation
	return &copied, nil
}

func (r *memFormulationRepo) List(ctx context.Context, offset, limit int) ([]*models.Formulation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Formulation{}
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		copied := *r.formulations[r.order[i]]
		out = append(out, &copied)
	}
	return out, int64(len(r.order)), nil
}

type memLotRepo struct {
	mu    sync.Mutex
	lots  map[string]*models.Lot
	order []string
}

func newMemLotRepo() *memLotRepo {
	return &memLotRepo{lots: make(map[string]*models.Lot)}
}

func (r *memLotRepo) Create(ctx context.Context, lot *models.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *lot
	r.lots[lot.Identity] = &copied
	r.order = append(r.order, lot.Identity)
	return nil
}

func (r *memLotRepo) GetByIdentity(ctx context.Context, identity string) (*models.Lot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lot, ok := r.lots[identity]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *lot
	return &copied, nil
}

func (r *memLotRepo) Update(ctx context.Context, lot *models.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lots[lot.Identity]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *lot
	r.lots[lot.Identity] = &copied
	return nil
}

func (r *memLotRepo) List(ctx context.Context, offset, limit int) ([]*models.Lot, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Lot{}
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		copied := *r.lots[r.order[i]]
		out = append(out, &copied)
	}
	return out, int64(len(r.order)), nil
}

type memIngredientRepo struct {
	mu          sync.Mutex
	ingredients map[string]*models.Ingredient
	order       []string
}

func newMemIngredientRepo() *memIngredientRepo {
	return &memIngredientRepo{ingredients: make(map[string]*models.Ingredient)}
}

func (r *memIngredientRepo) Create(ctx context.Context, ingredient *models.Ingredient) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *ingredient
	r.ingredients[ingredient.Identity] = &copied
	r.order = append(r.order, ingredient.Identity)
	return nil
}

func (r *memIngredientRepo) GetByIdentity(ctx context.Context, identity string) (*models.Ingredient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ingredient, ok := r.ingredients[identity]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *ingredient
	return &copied, nil
}

func (r *memIngredientRepo) List(ctx context.Context, offset, limit int) ([]*models.Ingredient, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Ingredient{}
	for i := offset; i < len(r.order) && len(out) < limit; i++ {
		copied := *r.ingredients[r.order[i]]
		out = append(out, &copied)
	}
	return out, int64(len(r.order)), nil
}

type memNotificationRepo struct {
	mu      sync.Mutex
	records []*models.Notification
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{}
}

func (r *memNotificationRepo) Create(ctx context.Context, record *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *record
	copied.ID = uint(len(r.records) + 1)
	r.records = append(r.records, &copied)
	return nil
}

func (r *memNotificationRepo) List(ctx context.Context, offset, limit int) ([]*models.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Notification{}
	// Newest first, mirroring the GORM implementation
	for i := len(r.records) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		copied := *r.records[i]
		out = append(out, &copied)
	}
	return out, int64(len(r.records)), nil
}

// byName returns all stored records carrying the given event name,
// oldest first
func (r *memNotificationRepo) byName(name string) []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for _, record := range r.records {
		if record.Name == name {
			copied := *record
			out = append(out, &copied)
		}
	}
	return out
}

type memUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*models.User
	nextID uint
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) GetByIdentity(ctx context.Context, identity string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Identity == identity {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.RefreshToken
}

func newMemRefreshTokenRepo() *memRefreshTokenRepo {
	return &memRefreshTokenRepo{tokens: make(map[string]*models.RefreshToken)}
}

func (r *memRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.tokens[token.TokenHash] = &copied
	return nil
}

func (r *memRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *token
	return &copied, nil
}

func (r *memRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if token, ok := r.tokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *memRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}
