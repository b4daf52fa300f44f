package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ fakes ------------

type fakeSession struct {
	user   *models.User
	tokens *models.AuthTokens
}

func (f *fakeSession) IsAuthenticated() bool { return f.user != nil && f.tokens != nil }
func (f *fakeSession) User() (models.User, bool) {
	if f.user == nil {
		return models.User{}, false
	}
	return *f.user, true
}
func (f *fakeSession) Session() models.Session {
	return models.Session{User: f.user, Tokens: f.tokens}
}

type fakeAuth struct {
	sess *fakeSession

	loginArgs []string
	loginErr  error
	regErr    error
	logoutErr error
	resetErr  error
	confirm   []string
	emails    []string
}

func (f *fakeAuth) Register(ctx context.Context, username, email, password string) (models.User, error) {
	if f.regErr != nil {
		return models.User{}, f.regErr
	}
	u := models.User{Username: username, Email: email}
	f.sess.user, f.sess.tokens = &u, &models.AuthTokens{Access: "A", Refresh: "R"}
	return u, nil
}

func (f *fakeAuth) Login(ctx context.Context, username, password string) (models.User, error) {
	f.loginArgs = []string{username, password}
	if f.loginErr != nil {
		return models.User{}, f.loginErr
	}
	u := models.User{Username: username}
	f.sess.user, f.sess.tokens = &u, &models.AuthTokens{Access: "A", Refresh: "R"}
	return u, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	if !f.sess.IsAuthenticated() {
		return client.ErrNotAuthenticated
	}
	f.sess.user, f.sess.tokens = nil, nil
	return f.logoutErr
}

func (f *fakeAuth) RequestPasswordReset(ctx context.Context, email string) error {
	f.emails = append(f.emails, email)
	return f.resetErr
}

func (f *fakeAuth) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	f.confirm = []string{token, newPassword}
	return nil
}

type fakeProfile struct {
	sess *fakeSession

	patches   []models.UserPatch
	updateErr error
	portfolio models.Portfolio
	saved     []models.Portfolio
}

func (f *fakeProfile) Profile(ctx context.Context) (models.User, error) {
	u, ok := f.sess.User()
	if !ok {
		return models.User{}, client.ErrNotAuthenticated
	}
	return u, nil
}

func (f *fakeProfile) Update(ctx context.Context, patch models.UserPatch) (models.User, error) {
	f.patches = append(f.patches, patch)
	if f.updateErr != nil {
		return models.User{}, f.updateErr
	}
	u := f.sess.user.Apply(patch)
	f.sess.user = &u
	return u, nil
}

func (f *fakeProfile) Portfolio(ctx context.Context) (models.Portfolio, error) {
	return f.portfolio, nil
}

func (f *fakeProfile) UpdatePortfolio(ctx context.Context, p models.Portfolio) (models.Portfolio, error) {
	f.saved = append(f.saved, p)
	return p, nil
}

func (f *fakeProfile) PublicURL() (string, error) {
	u, ok := f.sess.User()
	if !ok {
		return "", client.ErrNotAuthenticated
	}
	return "https://folio.example/" + u.Username, nil
}

// ------------ helpers ------------

func newTestApp(t *testing.T, input string) (*App, *fakeAuth, *fakeProfile, *bytes.Buffer) {
	t.Helper()
	stubTerminal(t, false, "", nil)
	sess := &fakeSession{}
	fa := &fakeAuth{sess: sess}
	fp := &fakeProfile{sess: sess}
	out := &bytes.Buffer{}
	return &App{
		authService:    fa,
		profileService: fp,
		session:        sess,
		reader:         bufio.NewReader(bytes.NewBufferString(input)),
		out:            out,
		log:            logging.Nop(),
	}, fa, fp, out
}

// ------------ tests ------------

func TestLogin_Success(t *testing.T) {
	a, fa, _, out := newTestApp(t, "jd\nSecret123\n")

	require.NoError(t, a.Login(context.Background()))
	assert.Equal(t, []string{"jd", "Secret123"}, fa.loginArgs)
	assert.Contains(t, out.String(), "Signed in as jd.")
	assert.Equal(t, "(jd)", a.getStatus())
}

func TestLogin_EmptyFieldsNeverReachServer(t *testing.T) {
	a, fa, _, out := newTestApp(t, "\n\n")

	err := a.Login(context.Background())
	require.Error(t, err)
	assert.Nil(t, fa.loginArgs)
	assert.Contains(t, out.String(), "username: Username is required")
}

func TestLogin_FieldErrorRendering(t *testing.T) {
	a, fa, _, out := newTestApp(t, "ghost\npw\n")
	fa.loginErr = &client.AuthenticationError{
		APIError: client.APIError{Status: 401, Message: "No account found with this username"},
		Kind:     client.AuthAccountNotFound,
		Field:    "username",
	}

	require.Error(t, a.Login(context.Background()))
	assert.Contains(t, out.String(), "  username: No account found with this username")
}

func TestRegister_ValidationBeforeNetwork(t *testing.T) {
	a, _, _, out := newTestApp(t, "jd\nnot-an-email\nweak\n")

	require.Error(t, a.Register(context.Background()))
	s := out.String()
	assert.Contains(t, s, "username: Username must be at least 3 characters long")
	assert.Contains(t, s, "email: Please enter a valid email address")
	assert.Contains(t, s, "password: Password must be at least 8 characters long")
	assert.False(t, a.isLoggedIn())
}

func TestRegister_ServerFieldErrors(t *testing.T) {
	a, fa, _, out := newTestApp(t, "jane\njane@example.com\nSecret123\n")
	fa.regErr = &client.ValidationError{
		APIError: client.APIError{Status: 400},
		Fields:   map[string][]string{"email": {"user with this email already exists."}},
	}

	require.Error(t, a.Register(context.Background()))
	assert.Contains(t, out.String(), "  email: user with this email already exists.")
}

func TestRegister_Success(t *testing.T) {
	a, _, _, out := newTestApp(t, "jane\njane@example.com\nSecret123\n")

	require.NoError(t, a.Register(context.Background()))
	assert.Contains(t, out.String(), "Account created. Signed in as jane.")
	assert.True(t, a.isLoggedIn())
}

func TestLogout(t *testing.T) {
	a, _, _, out := newTestApp(t, "jd\nSecret123\n")
	ctx := context.Background()

	require.ErrorIs(t, a.Logout(ctx), client.ErrNotAuthenticated)
	assert.Contains(t, out.String(), "You are not logged in.")

	require.NoError(t, a.Login(ctx))
	require.NoError(t, a.Logout(ctx))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Signed out.")
}

func TestForgot_SameMessageRegardless(t *testing.T) {
	a, fa, _, out := newTestApp(t, "who@x.io\n")

	require.NoError(t, a.Forgot(context.Background()))
	assert.Equal(t, []string{"who@x.io"}, fa.emails)
	assert.Contains(t, out.String(), "If an account exists for that email")
}

func TestForgot_NetworkError(t *testing.T) {
	a, fa, _, out := newTestApp(t, "who@x.io\n")
	fa.resetErr = &client.NetworkError{Method: "POST", Endpoint: "/api/accounts/forgot-password/", Err: errors.New("connection refused")}

	require.Error(t, a.Forgot(context.Background()))
	assert.Contains(t, out.String(), "Cannot reach the server: connection refused")
}

func TestReset(t *testing.T) {
	a, fa, _, _ := newTestApp(t, "tok123\nNewSecret1\n")

	require.NoError(t, a.Reset(context.Background()))
	assert.Equal(t, []string{"tok123", "NewSecret1"}, fa.confirm)
}

func TestEdit_AppliesPatch(t *testing.T) {
	a, _, fp, out := newTestApp(t, "jd\nSecret123\nbio=new\nTitle = Engineer\nphone=\n\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Edit(ctx))
	require.Len(t, fp.patches, 1)
	p := fp.patches[0]
	assert.Equal(t, "new", *p.Bio)
	assert.Equal(t, "Engineer", *p.Title)
	require.NotNil(t, p.Phone)
	assert.Equal(t, "", *p.Phone)
	assert.Nil(t, p.Username)
	assert.Contains(t, out.String(), "Profile updated.")
}

func TestEdit_RequiresSession(t *testing.T) {
	a, _, fp, _ := newTestApp(t, "bio=x\n\n")
	require.ErrorIs(t, a.Edit(context.Background()), client.ErrNotAuthenticated)
	assert.Empty(t, fp.patches)
}

func TestEdit_UnknownField(t *testing.T) {
	a, _, fp, out := newTestApp(t, "jd\nSecret123\ncolor=blue\n\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	require.Error(t, a.Edit(ctx))
	assert.Empty(t, fp.patches)
	assert.Contains(t, out.String(), `unknown field "color"`)
}

func TestParsePatch(t *testing.T) {
	p, err := parsePatch([]string{"fullName=Jane Doe", "WEBSITE=https://jd.dev"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", *p.FullName)
	assert.Equal(t, "https://jd.dev", *p.Website)

	_, err = parsePatch([]string{"no equals sign"})
	require.Error(t, err)
}

func TestSkills_ReplacesList(t *testing.T) {
	a, _, fp, out := newTestApp(t, "jd\nSecret123\nGo\n  SQL  \n\n")
	fp.portfolio = models.Portfolio{Skills: []string{"Perl"}, Projects: []models.Project{{Title: "folio"}}}
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Skills(ctx))
	require.Len(t, fp.saved, 1)
	assert.Equal(t, []string{"Go", "SQL"}, fp.saved[0].Skills)
	assert.Equal(t, "folio", fp.saved[0].Projects[0].Title)
	assert.Contains(t, out.String(), "Current skills: Perl")
}

func TestPortfolio_Prints(t *testing.T) {
	a, _, fp, out := newTestApp(t, "")
	fp.portfolio = models.Portfolio{
		Skills:      []string{"Go"},
		Experience:  []models.Experience{{Company: "Acme", Position: "Dev", Duration: "2y"}},
		SocialLinks: []models.SocialLink{{Platform: "github", URL: "https://github.com/jd"}},
	}

	require.NoError(t, a.Portfolio(context.Background()))
	s := out.String()
	assert.Contains(t, s, "Skills: Go")
	assert.Contains(t, s, "Dev, Acme (2y)")
	assert.Contains(t, s, "github: https://github.com/jd")
}

func TestLink(t *testing.T) {
	a, _, _, out := newTestApp(t, "jd\nSecret123\n")
	ctx := context.Background()
	require.NoError(t, a.Login(ctx))

	require.NoError(t, a.Link(ctx))
	assert.Contains(t, out.String(), "https://folio.example/jd")
}

func TestWhoami_ShowsExpiry(t *testing.T) {
	a, _, _, out := newTestApp(t, "")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": 1893456000, "user_id": 7}).
		SignedString([]byte("k"))
	require.NoError(t, err)
	sess := a.session.(*fakeSession)
	sess.user = &models.User{Username: "jd"}
	sess.tokens = &models.AuthTokens{Access: tok, Refresh: "R"}

	require.NoError(t, a.Whoami(context.Background()))
	s := out.String()
	assert.Contains(t, s, "username   jd")
	assert.Contains(t, s, "expires")
}

func TestWhoami_Anonymous(t *testing.T) {
	a, _, _, out := newTestApp(t, "")
	require.ErrorIs(t, a.Whoami(context.Background()), client.ErrNotAuthenticated)
	assert.Contains(t, out.String(), "You are not logged in.")
}

func TestWhoami_HalfSessionIsAnonymous(t *testing.T) {
	a, _, _, out := newTestApp(t, "")
	a.session.(*fakeSession).user = &models.User{Username: "jd"}

	require.ErrorIs(t, a.Whoami(context.Background()), client.ErrNotAuthenticated)
	assert.NotContains(t, out.String(), "jd")
}

func TestRenderError_APIError(t *testing.T) {
	var b bytes.Buffer
	renderError(&b, &client.APIError{Status: 500, Message: "HTTP error! status: 500"})
	assert.Equal(t, "Server error (500): HTTP error! status: 500\n", b.String())

	b.Reset()
	renderError(&b, client.ErrRequestInFlight)
	assert.Equal(t, "A request is already in progress.\n", b.String())
}
