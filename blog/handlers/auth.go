package handlers

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/aileon/awesome"
	"github.com/aileon/awesome/blog/models"
	"github.com/aileon/awesome/pkg/db"
	"github.com/aileon/awesome/pkg/id"
)

// gravatar returns the avatar URL for email.
func gravatar(email string) string {
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("http://www.gravatar.com/avatar/%s?d=mm&s=120", hex.EncodeToString(sum[:]))
}

// secret is what gets hashed for storage: the client digest bound to the
// account id.
func secret(uid, passwd string) []byte {
	return []byte(uid + ":" + passwd)
}

func (h *Handlers) register(c awesome.Context, args awesome.Args) (any, error) {
	in := registerInput{
		Name:   strings.TrimSpace(args.String("name")),
		Email:  args.String("email"),
		Passwd: args.String("passwd"),
	}
	if err := h.validate.Struct(&in); err != nil {
		return nil, err
	}

	existing, err := h.store.UserByEmail(c, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errEmailInUse()
	}

	uid := id.New()
	hash, err := bcrypt.GenerateFromPassword(secret(uid, in.Passwd), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:     uid,
		Email:  in.Email,
		Passwd: string(hash),
		Name:   in.Name,
		Image:  gravatar(in.Email),
	}
	if err := h.store.Users.Save(c, user); err != nil {
		// a concurrent registration won the unique email index
		if db.IsUniqueViolation(err) {
			return nil, errEmailInUse()
		}
		return nil, err
	}

	c.LogInfo("user registered", "user_id", user.ID)
	h.signIn(c, user)
	return user, nil
}

func errEmailInUse() error {
	return awesome.NewAPIError("register:failed", "email", "Email is already in use.")
}

func (h *Handlers) authenticate(c awesome.Context, args awesome.Args) (any, error) {
	in := authenticateInput{Email: args.String("email"), Passwd: args.String("passwd")}
	if err := h.validate.Struct(&in); err != nil {
		return nil, err
	}

	user, err := h.store.UserByEmail(c, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, awesome.ErrValue("email", "Email not exist.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Passwd), secret(user.ID, in.Passwd)) != nil {
		return nil, awesome.ErrValue("passwd", "Invalid password.")
	}

	h.signIn(c, user)
	return user, nil
}

func (h *Handlers) signIn(c awesome.Context, user *models.User) {
	c.SetCookie(h.cookieName, h.codec.Mint(user), h.maxAge)
}

func (h *Handlers) signout(c awesome.Context, args awesome.Args) (any, error) {
	target := args.Request().Header.Get("Referer")
	if target == "" {
		target = "/"
	}
	c.DeleteCookie(h.cookieName)
	c.LogInfo("user signed out")
	return awesome.RedirectPrefix + target, nil
}
