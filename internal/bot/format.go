package bot

import (
	"fmt"
	"strconv"
	"strings"

	"reporter/internal/report"
	"reporter/pkg/domain"
)

// Fixed chat texts. All user-facing copy is Spanish, matching the audience of
// the catalog itself.
const (
	welcomeText = `👋 ¡Hola! Soy el Bot de Reportes y Catálogo.

Comandos disponibles:
- /catalogo: Muestra los últimos videojuegos.
- /buscar <nombre o ID>: Busca un juego por nombre o ID.
- /enviar_pdf: Inicia el proceso de reporte por email.`

	fetchingCatalogText = "🔎 Obteniendo el catálogo de videojuegos..."
	emptyCatalogText    = "❌ No se encontraron videojuegos en la base de datos."
	dataAccessText      = "❌ Ocurrió un error al intentar acceder a la base de datos."
	searchUsageText     = "Por favor, usa el comando así: `/buscar <nombre o ID>`"
	reportStartedText   = "⏳ Iniciando el proceso de generación, encriptación y envío de PDF. Esto puede tardar..."

	catalogHeader = "📚 *Últimos Videojuegos en Catálogo:*"
)

// searchingText announces an in-progress search for the given term.
func searchingText(term string) string {
	return fmt.Sprintf("🔎 Buscando videojuegos que coincidan con: *%s*...", term)
}

// noResultsText reports an empty search result for the given term.
func noResultsText(term string) string {
	return fmt.Sprintf("❌ No se encontraron resultados para \"*%s*\". Intenta con otro nombre o ID.", term)
}

// searchHeader titles a non-empty search result listing.
func searchHeader(term string) string {
	return fmt.Sprintf("✅ *Resultados de la búsqueda para %s:*", term)
}

// chatYear renders the release year for chat listings. Unlike the PDF table,
// chat rows use the textual placeholder for missing years too.
func chatYear(item domain.CatalogItem) string {
	if item.Year == nil {
		return domain.MissingText
	}

	return strconv.Itoa(*item.Year)
}

// formatItems renders catalog rows as a Markdown listing under the given
// header. NULL columns are substituted with placeholders, never rendered
// empty.
func formatItems(header string, items []domain.CatalogItem) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, item := range items {
		fmt.Fprintf(&b, "*ID %d*: *%s*\n", item.ID, item.Name)
		fmt.Fprintf(&b, "   - Género: %s\n", item.GenreText())
		fmt.Fprintf(&b, "   - Año: %s\n", chatYear(item))
		fmt.Fprintf(&b, "   - Precio: %s\n\n", item.PriceText())
	}

	return b.String()
}

// formatSummary renders the outcome of a finished batch run.
func formatSummary(summary report.Summary) string {
	return fmt.Sprintf(
		"✅ ¡PROCESO DE REPORTE FINALIZADO! Enviados: %d de %d destinatarios (omitidos: %d).",
		summary.Delivered, summary.Total, summary.Skipped)
}

// formatReportFailure renders a fatal batch failure.
func formatReportFailure(err error) string {
	return fmt.Sprintf("❌ Fallo grave al generar el PDF. Error: %s.", err.Error())
}
