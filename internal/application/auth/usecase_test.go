package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.byEmail[u.Email] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) { return r.byEmail[email], nil }
func (r *fakeUserRepo) Update(u *entity.User) error                   { r.byEmail[u.Email] = u; return nil }

func newAuthUC() (*AuthUseCase, *fakeUserRepo) {
	repo := newFakeUserRepo()
	uc := NewAuthUseCase(repo, JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "gestion-pyme-test"})
	return uc, repo
}

func TestRegisterUser_CreaUsuarioConRolPorDefecto(t *testing.T) {
	uc, repo := newAuthUC()

	out, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Equal(t, entity.RoleVendedor, out.Role, "sin rol explícito se asigna vendedor")
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "ana@tienda.co", out.Name, "sin nombre se usa el email")

	// El hash nunca se expone y no es la contraseña en claro.
	stored := repo.byEmail["ana@tienda.co"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
}

func TestRegisterUser_EmailDuplicado(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "otroPass99"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_CredencialesCorrectas(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreto123", Role: entity.RoleAdmin})
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc, _ := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc, _ := newAuthUC()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@tienda.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestLogin_CuentaInactiva(t *testing.T) {
	uc, repo := newAuthUC()
	_, err := uc.RegisterUser(dto.RegisterRequest{Email: "ana@tienda.co", Password: "secreto123"})
	require.NoError(t, err)
	repo.byEmail["ana@tienda.co"].Status = "suspended"

	_, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.co", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
