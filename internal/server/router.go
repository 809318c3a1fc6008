package server

import (
	"context"
	"net/http"

	"chaoscatering/internal/handlers"
	applog "chaoscatering/internal/log"
)

var protectedRoutes = []struct {
	pattern string
	handler http.HandlerFunc
}{
	{"/app", handlers.Dashboard},
	{"/app/", handlers.Dashboard},
	{"/app/prep/sheet", handlers.PrepSheet},
	{"/app/api/ingredients", handlers.IngredientResource},
	{"/app/api/ingredients/", handlers.IngredientResource},
	{"/app/api/sub-recipes", handlers.SubRecipeResource},
	{"/app/api/sub-recipes/", handlers.SubRecipeResource},
	{"/app/api/dishes", handlers.DishResource},
	{"/app/api/dishes/", handlers.DishResource},
	{"/app/api/suppliers", handlers.SupplierResource},
	{"/app/api/suppliers/", handlers.SupplierResource},
	{"/app/api/invoices", handlers.InvoiceResource},
	{"/app/api/invoices/", handlers.InvoiceResource},
	{"/app/api/menu/", handlers.MenuResource},
	{"/app/api/prep", handlers.Prep},
}

func newRouter() http.Handler {
	mux := http.NewServeMux()
	applog.Debug(context.Background(), "registering http routes")
	mux.HandleFunc("/healthz", handlers.Health)
	applog.Debug(context.Background(), "route registered", "path", "/healthz")
	mux.HandleFunc("/login", handlers.Login)
	applog.Debug(context.Background(), "route registered", "path", "/login")
	mux.HandleFunc("/signup", handlers.Signup)
	applog.Debug(context.Background(), "route registered", "path", "/signup")
	mux.HandleFunc("/logout", handlers.Logout)
	applog.Debug(context.Background(), "route registered", "path", "/logout")
	for _, route := range protectedRoutes {
		mux.Handle(route.pattern, handlers.RequireAuthentication(route.handler))
		applog.Debug(context.Background(), "route registered", "path", route.pattern, "protected", true)
	}
	mux.HandleFunc("/", handlers.Home)
	applog.Debug(context.Background(), "route registered", "path", "/")
	mux.Handle("/assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("web/static"))))
	applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	return mux
}
