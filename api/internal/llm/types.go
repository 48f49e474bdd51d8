package llm

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

// ParseInput — запрос на разбор текста задачи в структуру.
type ParseInput struct {
	ProblemID string `json:"problem_id"`
	Problem   string `json:"problem"`
	Category  string `json:"category,omitempty"`

	// Необязательная модель (перекрывает модель движка при вызове).
	ModelOverride string `json:"model,omitempty"`
}

// ParsedStructure — строгий выход модели-парсера: никакого счёта,
// только тип задачи, извлечённые переменные и словесная стратегия.
type ParsedStructure struct {
	ProblemID   string    `json:"problem_id"`
	ProblemType string    `json:"problem_type"`
	Variables   Variables `json:"variables"`
	Strategy    string    `json:"strategy"`
}

// Канонический словарь имён переменных по типам задач. Валидатор
// и конвертер в доменные варианты понимают только эти имена.
const (
	VarTotalMen      = "total_men"
	VarTotalWomen    = "total_women"
	VarCommitteeSize = "committee_size"
	VarMinMen        = "min_men"
	VarMinWomen      = "min_women"

	VarSumSquares = "x_squared_plus_y_squared"
	VarProduct    = "xy"

	VarN = "n"

	VarRadius  = "radius"
	VarTangent = "tangent_length"

	VarNumDice   = "num_dice"
	VarTargetSum = "target_sum"
	VarDiceFaces = "dice_faces"

	VarCoefficients = "coefficients"
)

// Variables — гибкий парсер словаря переменных. Модели возвращают числа
// как int, float или строку, а коэффициенты многочлена — массивом;
// принимаем всё, раскладывая на скаляры и список коэффициентов.
type Variables struct {
	Scalars      map[string]float64
	Coefficients []float64
}

func (v *Variables) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := Variables{Scalars: map[string]float64{}}
	for key, val := range raw {
		switch t := val.(type) {
		case float64:
			out.Scalars[key] = t
		case string:
			if f, err := strconv.ParseFloat(t, 64); err == nil {
				out.Scalars[key] = f
			}
		case []any:
			coefs := make([]float64, 0, len(t))
			for _, el := range t {
				f, ok := el.(float64)
				if !ok {
					coefs = nil
					break
				}
				coefs = append(coefs, f)
			}
			if coefs != nil && key == VarCoefficients {
				out.Coefficients = coefs
			}
		}
	}
	*v = out
	return nil
}

func (v Variables) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(v.Scalars)+1)
	for k, f := range v.Scalars {
		out[k] = f
	}
	if v.Coefficients != nil {
		out[VarCoefficients] = v.Coefficients
	}
	return json.Marshal(out)
}

// Get возвращает скалярную переменную по каноническому имени.
func (v Variables) Get(name string) (float64, bool) {
	f, ok := v.Scalars[name]
	return f, ok
}

// Int — скаляр как целое; дробные значения округляются к ближайшему.
func (v Variables) Int(name string) (int, bool) {
	f, ok := v.Scalars[name]
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}

// Names — отсортированные имена скаляров, для детерминированных сообщений.
func (v Variables) Names() []string {
	names := make([]string, 0, len(v.Scalars))
	for k := range v.Scalars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
