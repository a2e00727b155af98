// Package duplicates implementa el detector de duplicados (servicio de
// dominio, funciones puras sobre un snapshot de items).
//
// La detección es POR CAMPO, no por registro: cada campo vigilado es un eje
// independiente y dos items colisionan si coinciden en el valor normalizado
// de UN solo campo vigilado. Con N campos el resultado es la unión de N
// análisis de un campo, no una clave compuesta. Ampliar el conjunto vigilado
// aumenta los falsos positivos; esta semántica OR es una decisión de diseño
// que el sistema ejerce de forma consistente (detector, protocolo de
// confirmación y monitor) y debe reproducirse tal cual.
package duplicates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
)

// Group es un grupo de items que comparten el valor normalizado de un campo
// vigilado. Siempre tiene al menos dos miembros.
type Group struct {
	Field string
	Value string // valor normalizado
	Items []entity.Item
}

// Collision es el resultado del chequeo pre-escritura de un candidato: los
// items ya existentes que coinciden en un campo vigilado.
type Collision struct {
	Field   string
	Value   string // valor del candidato tal cual se escribe
	Matches []entity.Item
}

// Normalize reduce un valor a su forma de comparación: "" para nil, en otro
// caso la representación textual sin espacios extremos y en minúsculas. Los
// valores que normalizan a cadena vacía quedan fuera de la indexación: un
// blanco nunca es duplicado de otro blanco.
func Normalize(v any) string {
	if v == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(stringify(v)))
}

// stringify replica la conversión a texto del valor tal como se guardó
// (los números JSON llegan como float64).
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Detect recorre todos los items (todas las categorías a la vez, sin filtro)
// e indexa cada campo vigilado por valor normalizado. Devuelve solo los
// buckets con dos o más items, ordenados por tamaño de grupo descendente
// (los más duplicados primero). Consulta pura: sin efectos ni errores;
// entrada degenerada (sin campos vigilados, sin items) produce resultado
// vacío.
func Detect(items []entity.Item, watched []string) []Group {
	if len(watched) == 0 || len(items) == 0 {
		return []Group{}
	}

	// Un índice valor->items por cada campo vigilado
	fieldMaps := make(map[string]map[string][]entity.Item, len(watched))
	for _, f := range watched {
		fieldMaps[f] = map[string][]entity.Item{}
	}

	for _, item := range items {
		for _, f := range watched {
			normalized := Normalize(item.Value(f))
			if normalized == "" {
				continue
			}
			fieldMaps[f][normalized] = append(fieldMaps[f][normalized], item)
		}
	}

	groups := []Group{}
	for _, f := range watched {
		for value, bucket := range fieldMaps[f] {
			if len(bucket) > 1 {
				groups = append(groups, Group{Field: f, Value: value, Items: bucket})
			}
		}
	}

	// Más duplicados primero; desempate estable por campo y valor para que
	// dos pasadas sobre el mismo snapshot devuelvan los mismos grupos.
	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].Items) != len(groups[j].Items) {
			return len(groups[i].Items) > len(groups[j].Items)
		}
		if groups[i].Field != groups[j].Field {
			return groups[i].Field < groups[j].Field
		}
		return groups[i].Value < groups[j].Value
	})
	return groups
}

// MatchCandidate aplica la misma regla de normalización y coincidencia por
// campo, pero solo sobre los valores concretos del candidato (alta o
// edición). excludeID descarta el propio item al editar. Las colisiones se
// devuelven en el orden de iteración de watched (orden de inserción de la
// configuración), que es el orden en que se presentan al operador.
func MatchCandidate(items []entity.Item, watched []string, candidate *entity.Item, excludeID string) []Collision {
	collisions := []Collision{}
	for _, f := range watched {
		raw := candidate.Value(f)
		normalized := Normalize(raw)
		if normalized == "" {
			continue
		}
		matches := []entity.Item{}
		for _, existing := range items {
			if existing.ID == excludeID {
				continue
			}
			if Normalize(existing.Value(f)) == normalized {
				matches = append(matches, existing)
			}
		}
		if len(matches) > 0 {
			collisions = append(collisions, Collision{Field: f, Value: stringify(raw), Matches: matches})
		}
	}
	return collisions
}

// ChangedFields devuelve las claves cuyo valor anterior estaba poblado y
// difiere del nuevo (comparación textual, como el formulario de edición).
// Es la entrada del flujo de disposición de valores antiguos.
func ChangedFields(oldItem, newItem *entity.Item) []string {
	changed := []string{}
	for key, newVal := range newItem.Values {
		if entity.IsReservedItemKey(key) {
			continue
		}
		oldVal := oldItem.Value(key)
		if entity.EmptyValue(oldVal) {
			continue
		}
		if stringify(oldVal) != stringify(newVal) {
			changed = append(changed, key)
		}
	}
	sort.Strings(changed)
	return changed
}
