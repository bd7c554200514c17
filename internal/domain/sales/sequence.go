package sales

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Prefijos de los identificadores legibles.
const (
	PrefixTransaction = "SLS" // órdenes de venta
	PrefixReturn      = "SRT" // devoluciones
)

// Formato de secuencia: PREFIX-AAA0001. Los números corren 0001–9999 y al
// agotarse incrementan las letras (AAA→AAB, …, ZZZ→AAAA) reiniciando en 0001.
const (
	sequenceFirstLetters = "AAA"
	sequenceFirstNumbers = "0001"
	sequenceMaxNumber    = 9999
)

var sequenceIDPattern = regexp.MustCompile(`^([A-Z]+)-([A-Z]+)(\d{4})$`)

// FirstID primer identificador de una secuencia nueva para el prefijo.
func FirstID(prefix string) string {
	return fmt.Sprintf("%s-%s%s", strings.ToUpper(prefix), sequenceFirstLetters, sequenceFirstNumbers)
}

// NextID siguiente identificador a partir del último emitido. Si el último no
// coincide con el formato o el prefijo, la secuencia se reinicia desde el comienzo.
func NextID(latest, prefix string) string {
	prefix = strings.ToUpper(prefix)
	m := sequenceIDPattern.FindStringSubmatch(latest)
	if m == nil || m[1] != prefix {
		return FirstID(prefix)
	}
	letters, numbers := m[2], m[3]

	n, err := strconv.Atoi(numbers)
	if err != nil || n < 1 {
		return FirstID(prefix)
	}
	if n < sequenceMaxNumber {
		return fmt.Sprintf("%s-%s%04d", prefix, letters, n+1)
	}
	return fmt.Sprintf("%s-%s%s", prefix, incrementLetters(letters), sequenceFirstNumbers)
}

// incrementLetters AAA→AAB, AAZ→ABA, ZZZ→AAAA.
func incrementLetters(letters string) string {
	b := []byte(letters)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < 'Z' {
			b[i]++
			return string(b)
		}
		b[i] = 'A'
	}
	return strings.Repeat("A", len(b)+1)
}

// InvoiceNumber número de factura basado en timestamp: INV-yyyymmddhhmmss.
func InvoiceNumber(now time.Time) string {
	return "INV-" + now.Format("20060102150405")
}
