package report

import (
	"fmt"
	"time"
)

// reportSubject builds the delivery subject line for the given send date.
func reportSubject(now time.Time) string {
	return fmt.Sprintf("🔐 Catálogo Videojuegos PROTEGIDO - %s", now.Format("02/01/2006"))
}

// reportBody returns the fixed-structure HTML body explaining that the
// recipient's cédula opens the attached document. The credential itself is
// never embedded; only the hint.
func reportBody() string {
	return `
        <p>Estimado(a) destinatario(a),</p>
        <p>Adjuntamos el <b>Catálogo de Videojuegos</b>, un archivo PDF importante.</p>

        <div style="background-color: #f0f8ff; padding: 15px;">
            <p style="font-weight: bold; color: #333;">⚠️ Atención: El documento está protegido con cifrado AES-256 bits.</p>
            <p>La <b>contraseña</b> para poder abrir el archivo PDF es:</p>
            <h2 style="color: #FF0000; margin: 5px 0;">SU NÚMERO DE CÉDULA/IDENTIFICACIÓN</h2>
        </div>

        <p>Saludos cordiales.</p>
    `
}
