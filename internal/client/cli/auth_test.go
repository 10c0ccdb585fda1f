package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/docvault/docvault/internal/client/api"
)

func stubInputs(t *testing.T, texts []string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if i >= len(texts) {
			t.Fatalf("unexpected extra text prompt")
		}
		s := texts[i]
		i++
		return s, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

type fakeAPI struct {
	regUser, regEmail, regPass string
	regErr                     error

	loginUser, loginPass string
	loginErr             error
	authenticated        bool

	meUser string
	meErr  error

	list    *api.DocumentList
	listErr error

	uploadPath string
	uploadDoc  *api.Document
	uploadErr  error
}

func (f *fakeAPI) Register(_ context.Context, user, email, pass string) error {
	f.regUser, f.regEmail, f.regPass = user, email, pass
	return f.regErr
}
func (f *fakeAPI) Login(_ context.Context, user, pass string) error {
	f.loginUser, f.loginPass = user, pass
	if f.loginErr == nil {
		f.authenticated = true
	}
	return f.loginErr
}
func (f *fakeAPI) IsAuthenticated() bool { return f.authenticated }
func (f *fakeAPI) Me(context.Context) (string, error) {
	return f.meUser, f.meErr
}
func (f *fakeAPI) ListDocuments(context.Context) (*api.DocumentList, error) {
	return f.list, f.listErr
}
func (f *fakeAPI) UploadDocument(_ context.Context, path string) (*api.Document, error) {
	f.uploadPath = path
	return f.uploadDoc, f.uploadErr
}

func TestRegister_PassesInputsToAPI(t *testing.T) {
	f := &fakeAPI{}
	a := &App{api: f}

	restore := stubInputs(t, []string{"alice", "alice@example.org"}, []byte("secret"))
	defer restore()

	if err := a.Register(context.Background()); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if f.regUser != "alice" || f.regEmail != "alice@example.org" || f.regPass != "secret" {
		t.Fatalf("register args mismatch: %q %q %q", f.regUser, f.regEmail, f.regPass)
	}
}

func TestLogin_RemembersUserName(t *testing.T) {
	f := &fakeAPI{}
	a := &App{api: f}

	restore := stubInputs(t, []string{"alice"}, []byte("secret"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginUser != "alice" || f.loginPass != "secret" {
		t.Fatalf("login args mismatch: %q %q", f.loginUser, f.loginPass)
	}
	if a.userName != "alice" {
		t.Fatalf("userName not remembered: %q", a.userName)
	}
	if !a.isLoggedIn() {
		t.Fatalf("expected logged-in state after login")
	}
}

func TestLogin_ErrorPropagates(t *testing.T) {
	f := &fakeAPI{loginErr: errors.New("boom")}
	a := &App{api: f}

	restore := stubInputs(t, []string{"alice"}, []byte("secret"))
	defer restore()

	if err := a.Login(context.Background()); err == nil {
		t.Fatalf("want error from Login")
	}
	if a.userName != "" {
		t.Fatalf("userName must stay empty on failed login")
	}
}
