package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"chaoscatering/internal/views/components"
	"chaoscatering/internal/views/layout"
)

func loginForm(message, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<section id="auth" class="auth-card"><h1>Chaos Catering</h1><p>Sign in to the kitchen back office.</p>`)
		h.Render(ctx, components.Flash(message))
		h.Raw(`<form method="post" action="/login" hx-post="/login" hx-target="#auth" hx-swap="outerHTML">`)
		h.Raw(`<label>Email<input type="email" name="email" required`)
		h.Attr("value", email)
		h.Raw(`></label><label>Password<input type="password" name="password" required></label>`)
		h.Raw(`<button type="submit">Sign in</button></form><p><a href="/signup">Create an account</a></p></section>`)
		return h.Err()
	})
}

// Login renders the full sign-in page.
func Login(message, email string) templ.Component {
	return layout.Layout("Sign in | Chaos Catering", nil, loginForm(message, email), false)
}

// LoginPartial renders only the sign-in card for htmx swaps.
func LoginPartial(message, email string) templ.Component {
	return loginForm(message, email)
}

func signupForm(message, name, email string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewWriter(w)
		h.Raw(`<section id="auth" class="auth-card"><h1>Create your kitchen account</h1>`)
		h.Render(ctx, components.Flash(message))
		h.Raw(`<form method="post" action="/signup" hx-post="/signup" hx-target="#auth" hx-swap="outerHTML">`)
		h.Raw(`<label>Name<input type="text" name="name"`)
		h.Attr("value", name)
		h.Raw(`></label><label>Email<input type="email" name="email" required`)
		h.Attr("value", email)
		h.Raw(`></label><label>Password<input type="password" name="password" minlength="8" required></label>`)
		h.Raw(`<label>Confirm password<input type="password" name="confirm_password" minlength="8" required></label>`)
		h.Raw(`<button type="submit">Create account</button></form><p><a href="/login">Already registered? Sign in</a></p></section>`)
		return h.Err()
	})
}

// Signup renders the full registration page.
func Signup(message, name, email string) templ.Component {
	return layout.Layout("Sign up | Chaos Catering", nil, signupForm(message, name, email), false)
}

func SignupPartial(message, name, email string) templ.Component {
	return signupForm(message, name, email)
}
