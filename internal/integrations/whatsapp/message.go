package whatsapp

import (
	"fmt"
	"strings"

	"github.com/m04kA/DPL-BookingService/internal/domain"
	"github.com/m04kA/DPL-BookingService/pkg/dateutil"
)

// ConfirmationMessage собирает текст подтверждения записи для клиента
func ConfirmationMessage(apt *domain.Appointment) string {
	zones := make([]string, len(apt.SelectedZones))
	for i, z := range apt.SelectedZones {
		zones[i] = z.Name
	}

	var b strings.Builder
	b.WriteString("🎉 *¡Tu turno está confirmado!*\n\n")
	fmt.Fprintf(&b, "👤 *Cliente:* %s %s\n", apt.ClientName, apt.ClientLastName)
	fmt.Fprintf(&b, "📅 *Fecha:* %s\n", dateutil.Format(apt.AppointmentDate))
	fmt.Fprintf(&b, "🕐 *Horario:* %s - %s\n", apt.StartTime, apt.EndTime)
	fmt.Fprintf(&b, "💆‍♀️ *Zonas:* %s\n", strings.Join(zones, ", "))
	fmt.Fprintf(&b, "💰 *Total:* $%.2f\n", apt.TotalPrice)
	fmt.Fprintf(&b, "✅ *Seña pagada:* $%.2f\n\n", apt.DepositAmount)
	b.WriteString("📝 *Detalles importantes:*\n")
	b.WriteString("• Llega 5-10 minutos antes de tu turno\n")
	b.WriteString("• El resto del pago se realiza el día del turno\n")
	fmt.Fprintf(&b, "• Para cancelaciones, mínimo %dhs de anticipación\n\n", domain.CancellationNoticeHours)
	b.WriteString("¡Te esperamos! 💕")

	return b.String()
}
