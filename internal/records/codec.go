package records

import "github.com/cockroachdb/errors"

// each record is stored positionally, the column names themselves come from
// configuration. Values returns the fields in storage order and the
// <Record>FromValues functions invert it.

func checkWidth(kind string, values []string, width int) error {
	if len(values) != width {
		return errors.Mark(
			errors.Newf("%s: expected %d values, got %d", kind, width, len(values)),
			ErrMalformedFragments,
		)
	}
	return nil
}

const (
	EventWidth         = 4
	FightWidth         = 3
	FightResultWidth   = 11
	FightStatWidth     = 19
	FighterDetailWidth = 4
	FighterTottWidth   = 7
)

func (e Event) Values() []string {
	return []string{e.Name, e.URL, e.Date, e.Location}
}

func EventFromValues(v []string) (Event, error) {
	if err := checkWidth("event", v, EventWidth); err != nil {
		return Event{}, err
	}
	return Event{Name: v[0], URL: v[1], Date: v[2], Location: v[3]}, nil
}

func (f Fight) Values() []string {
	return []string{f.Event, f.Bout, f.URL}
}

func FightFromValues(v []string) (Fight, error) {
	if err := checkWidth("fight", v, FightWidth); err != nil {
		return Fight{}, err
	}
	return Fight{Event: v[0], Bout: v[1], URL: v[2]}, nil
}

func (r FightResult) Values() []string {
	return []string{
		r.Event, r.Bout, r.Outcome, r.WeightClass, r.Method, r.Round,
		r.Time, r.TimeFormat, r.Referee, r.Details, r.URL,
	}
}

func FightResultFromValues(v []string) (FightResult, error) {
	if err := checkWidth("fight result", v, FightResultWidth); err != nil {
		return FightResult{}, err
	}
	return FightResult{
		Event:       v[0],
		Bout:        v[1],
		Outcome:     v[2],
		WeightClass: v[3],
		Method:      v[4],
		Round:       v[5],
		Time:        v[6],
		TimeFormat:  v[7],
		Referee:     v[8],
		Details:     v[9],
		URL:         v[10],
	}, nil
}

func (s FightStat) Values() []string {
	return []string{
		s.Event, s.Bout, s.Round, s.Fighter, s.KD, s.SigStr, s.SigStrPct,
		s.TotalStr, s.TD, s.TDPct, s.SubAtt, s.Rev, s.Ctrl,
		s.Head, s.Body, s.Leg, s.Distance, s.Clinch, s.Ground,
	}
}

func FightStatFromValues(v []string) (FightStat, error) {
	if err := checkWidth("fight stat", v, FightStatWidth); err != nil {
		return FightStat{}, err
	}
	return FightStat{
		Event:     v[0],
		Bout:      v[1],
		Round:     v[2],
		Fighter:   v[3],
		KD:        v[4],
		SigStr:    v[5],
		SigStrPct: v[6],
		TotalStr:  v[7],
		TD:        v[8],
		TDPct:     v[9],
		SubAtt:    v[10],
		Rev:       v[11],
		Ctrl:      v[12],
		Head:      v[13],
		Body:      v[14],
		Leg:       v[15],
		Distance:  v[16],
		Clinch:    v[17],
		Ground:    v[18],
	}, nil
}

func (d FighterDetail) Values() []string {
	return []string{d.First, d.Last, d.Nickname, d.URL}
}

func FighterDetailFromValues(v []string) (FighterDetail, error) {
	if err := checkWidth("fighter detail", v, FighterDetailWidth); err != nil {
		return FighterDetail{}, err
	}
	return FighterDetail{First: v[0], Last: v[1], Nickname: v[2], URL: v[3]}, nil
}

func (t FighterTott) Values() []string {
	return []string{t.Fighter, t.Height, t.Weight, t.Reach, t.Stance, t.DOB, t.URL}
}

func FighterTottFromValues(v []string) (FighterTott, error) {
	if err := checkWidth("fighter tott", v, FighterTottWidth); err != nil {
		return FighterTott{}, err
	}
	return FighterTott{
		Fighter: v[0],
		Height:  v[1],
		Weight:  v[2],
		Reach:   v[3],
		Stance:  v[4],
		DOB:     v[5],
		URL:     v[6],
	}, nil
}
