// console es la interfaz de línea de comandos del inventario: inicia sesión
// contra el backend, consulta productos/categorías/proveedores/transacciones
// y registra compras, ventas y devoluciones.
//
// Uso: console <comando> [args]
//
// Comandos:
//
//	login <email> [password]        inicia sesión (password por stdin si se omite)
//	logout                          cierra la sesión local
//	whoami                          muestra la sesión actual
//	productos                       lista productos
//	producto <id>                   detalle de un producto
//	categorias                      lista categorías
//	proveedores                     lista proveedores
//	transacciones [texto]           lista transacciones (búsqueda libre opcional)
//	compra <proveedorId> <prodId:cant:precio> ...
//	venta <prodId:cant:precio> ...
//	reporte <mes> <año> [salida.pdf]
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-console/internal/application/auth"
	"github.com/jhoicas/Inventario-console/internal/application/checkout"
	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/api"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/sessionstore"
	"github.com/jhoicas/Inventario-console/pkg/config"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	session, err := sessionstore.New(cfg.Session.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de sesión")
	}
	// Efecto de "volver al login": al derribarse la sesión (logout o 401)
	// se avisa al operador por stderr.
	session.OnClear = func() {
		fmt.Fprintln(os.Stderr, "Sesión finalizada. Ejecute 'console login' para continuar.")
	}

	client, err := api.New(api.Config{
		BaseURL:      cfg.API.BaseURL,
		Timeout:      cfg.API.Timeout(),
		RateLimitRPS: cfg.API.RateLimitRPS,
	}, session, log)
	if err != nil {
		log.Fatal().Err(err).Msg("construir cliente del API")
	}

	ctx := context.Background()
	authUC := auth.New(client, session, log)
	checkoutUC := checkout.New(client, log)

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "login":
		runLogin(ctx, authUC, args)
	case "logout":
		exitOn(authUC.Logout())
	case "whoami":
		runWhoami(authUC)
	case "productos":
		res, err := client.GetAllProducts(ctx)
		exitOn(err)
		requireOK(res.Success, res.Message, res.StatusCode)
		printProducts(res.Data)
	case "producto":
		id := argInt(args, 0, "id de producto")
		res, err := client.GetProductByID(ctx, id)
		exitOn(err)
		requireOK(res.Success, res.Message, res.StatusCode)
		printProducts([]entity.Product{res.Data})
	case "categorias":
		res, err := client.GetAllCategories(ctx)
		exitOn(err)
		requireOK(res.Success, res.Message, res.StatusCode)
		printCategories(res.Data)
	case "proveedores":
		res, err := client.GetAllSuppliers(ctx)
		exitOn(err)
		requireOK(res.Success, res.Message, res.StatusCode)
		printSuppliers(res.Data)
	case "transacciones":
		search := ""
		if len(args) > 0 {
			search = strings.Join(args, " ")
		}
		res, err := client.GetAllTransactions(ctx, 0, 1000, search)
		exitOn(err)
		requireOK(res.Success, res.Message, res.StatusCode)
		printTransactions(res.Data)
	case "compra":
		runPurchase(ctx, client, checkoutUC, args)
	case "venta":
		runSale(ctx, client, checkoutUC, args)
	case "reporte":
		runReport(ctx, client, args)
	default:
		usage()
		os.Exit(2)
	}
}

func runLogin(ctx context.Context, uc *auth.UseCase, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "uso: console login <email> [password]")
		os.Exit(2)
	}
	email := args[0]
	var password string
	if len(args) > 1 {
		password = args[1]
	} else {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		exitOn(err)
		password = strings.TrimSpace(line)
	}

	user, res, err := uc.Login(ctx, email, password)
	exitOn(err)
	if !res.Success {
		fmt.Fprintf(os.Stderr, "Login rechazado (%d): %s\n", res.StatusCode, res.Message)
		os.Exit(1)
	}
	fmt.Printf("Sesión iniciada como %s (%s)\n", user.Email, user.Role)
}

func runWhoami(uc *auth.UseCase) {
	s, err := uc.CurrentSession()
	exitOn(err)
	if !s.Authenticated {
		fmt.Println("Sin sesión.")
		os.Exit(1)
	}
	fmt.Printf("Autenticado. Rol: %s\n", nonEmpty(s.Role, "desconocido"))
	if !s.ExpiresAt.IsZero() {
		fmt.Printf("El token expira: %s\n", s.ExpiresAt.Format("2006-01-02 15:04"))
	}
}

func runPurchase(ctx context.Context, client *api.Client, uc *checkout.UseCase, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: console compra <proveedorId> <prodId:cant:precio> ...")
		os.Exit(2)
	}
	supplierID := argInt(args, 0, "id de proveedor")
	items := buildCart(ctx, client, args[1:], false)
	summary, err := uc.SubmitPurchase(ctx, supplierID, "", items)
	exitOn(err)
	reportSummary(summary)
}

func runSale(ctx context.Context, client *api.Client, uc *checkout.UseCase, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "uso: console venta <prodId:cant:precio> ...")
		os.Exit(2)
	}
	// En ventas sí se valida el stock local antes de enviar.
	items := buildCart(ctx, client, args, true)
	summary, err := uc.SubmitSale(ctx, "", items)
	exitOn(err)
	reportSummary(summary)
}

// buildCart resuelve cada línea prodId:cant:precio contra el backend y la
// agrega al carrito (las líneas repetidas de un producto se fusionan).
func buildCart(ctx context.Context, client *api.Client, lines []string, checkStock bool) []cart.Item {
	var items []cart.Item
	for _, line := range lines {
		parts := strings.Split(line, ":")
		if len(parts) < 2 || len(parts) > 3 {
			fmt.Fprintf(os.Stderr, "línea inválida %q (esperado prodId:cant[:precio])\n", line)
			os.Exit(2)
		}
		productID, err := strconv.Atoi(parts[0])
		exitOn(err)
		qty, err := strconv.Atoi(parts[1])
		exitOn(err)

		res, err := client.GetProductByID(ctx, productID)
		exitOn(err)
		requireOK(res.Success, res.Message, res.StatusCode)
		product := res.Data

		unitPrice := product.Price
		if len(parts) == 3 {
			unitPrice, err = decimal.NewFromString(parts[2])
			exitOn(err)
		}

		items, err = cart.Add(items, product, qty, unitPrice, checkStock)
		exitOn(err)
	}
	return items
}

func reportSummary(s *checkout.Summary) {
	fmt.Println(s)
	for _, f := range s.Failures {
		fmt.Fprintf(os.Stderr, "  producto %d: %s (%d)\n", f.ProductID, f.Message, f.StatusCode)
	}
	if !s.AllOK() {
		os.Exit(1)
	}
}

func runReport(ctx context.Context, client *api.Client, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: console reporte <mes> <año> [salida.pdf]")
		os.Exit(2)
	}
	month := argInt(args, 0, "mes")
	year := argInt(args, 1, "año")
	out := fmt.Sprintf("transacciones-%04d-%02d.pdf", year, month)
	if len(args) > 2 {
		out = args[2]
	}

	res, err := client.GetTransactionsByMonthYear(ctx, month, year)
	exitOn(err)
	requireOK(res.Success, res.Message, res.StatusCode)

	doc, err := pdf.NewTransactionReportGenerator().Generate(month, year, res.Data)
	exitOn(err)
	exitOn(os.WriteFile(out, doc, 0o644))
	fmt.Printf("Reporte escrito en %s (%d transacciones)\n", out, len(res.Data))
}

// ── Salida en tablas ──────────────────────────────────────────────────────────

func table() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}

func printProducts(products []entity.Product) {
	w := table()
	fmt.Fprintln(w, "ID\tNOMBRE\tSKU\tPRECIO\tSTOCK\tCATEGORÍA")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\n",
			p.ID, p.Name, p.SKU, p.Price.StringFixed(2), p.StockQuantity, p.CategoryID)
	}
	w.Flush()
}

func printCategories(categories []entity.Category) {
	w := table()
	fmt.Fprintln(w, "ID\tNOMBRE\tDESCRIPCIÓN")
	for _, c := range categories {
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, c.Name, c.Description)
	}
	w.Flush()
}

func printSuppliers(suppliers []entity.Supplier) {
	w := table()
	fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tTELÉFONO")
	for _, s := range suppliers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.Name, s.Email, s.Phone)
	}
	w.Flush()
}

func printTransactions(transactions []entity.Transaction) {
	w := table()
	fmt.Fprintln(w, "ID\tTIPO\tUNIDADES\tTOTAL\tESTADO\tFECHA")
	for _, t := range transactions {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
			t.ID, t.TransactionType, t.TotalProducts, t.TotalPrice.StringFixed(2), t.Status, t.CreatedAt)
	}
	w.Flush()
}

// ── Utilidades ────────────────────────────────────────────────────────────────

func argInt(args []string, i int, label string) int {
	if i >= len(args) {
		fmt.Fprintf(os.Stderr, "falta %s\n", label)
		os.Exit(2)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s inválido: %s\n", label, args[i])
		os.Exit(2)
	}
	return n
}

func requireOK(success bool, message string, status int) {
	if !success {
		fmt.Fprintf(os.Stderr, "El backend respondió %d: %s\n", status, message)
		os.Exit(1)
	}
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, `uso: console <comando> [args]

  login <email> [password]   iniciar sesión
  logout                     cerrar sesión local
  whoami                     sesión actual
  productos | producto <id>
  categorias | proveedores
  transacciones [texto]
  compra <proveedorId> <prodId:cant[:precio]> ...
  venta <prodId:cant[:precio]> ...
  reporte <mes> <año> [salida.pdf]`)
}
