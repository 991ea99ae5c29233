package keywords

// InitialSeeds are well known products that reliably return medicine
// dictionary entries, used to bootstrap an empty keyword queue.
var InitialSeeds = []string{
	"타이레놀", "게보린", "아스피린", "부루펜", "판피린", "판콜",
	"텐텐", "이가탄", "베아제", "훼스탈", "백초시럽", "판콜에이",
	"신신파스", "포카시엘", "우루사", "인사돌", "센트럼", "삐콤씨",
	"컨디션", "박카스", "아로나민", "아모잘탄", "엔테론", "듀파락",
}

var generalClassSeeds = []string{
	"진통제", "해열제", "감기약", "소화제", "제산제", "지사제",
	"변비약", "비타민", "종합비타민", "구충제", "항히스타민제",
	"항생제", "소염진통제",
}

var prescriptionClassSeeds = []string{
	"고혈압약", "당뇨약", "콜레스테롤약", "항응고제", "항우울제",
	"항불안제", "수면제", "갑상선약", "관절염약", "천식약",
	"간질약", "빈혈약",
}

var dosageFormSeeds = []string{
	"정제", "캡슐", "주사제", "연고", "크림", "점안액", "점이액",
	"좌제", "시럽", "패치", "겔", "스프레이",
}

var componentSeeds = []string{
	"아목시실린", "세티리진", "로라타딘", "디클로페낙", "메트포민",
	"심바스타틴", "아토르바스타틴", "암로디핀", "오메프라졸",
	"라니티딘", "독시사이클린", "세파클러", "아세트아미노펜",
	"이부프로펜", "리도카인",
}

var efficacySeeds = []string{
	"두통약", "치통약", "생리통약", "근육통약", "관절통약",
	"소화촉진제", "비염약", "기침약", "가래약", "멀미약",
	"숙취해소제", "알레르기약", "피부연고", "습포제", "구내염약",
	"안약", "피로회복제",
}

// ExtensiveSeeds covers drug classes, dosage forms, common active
// components and efficacy groups in addition to the brand names.
func ExtensiveSeeds() []string {
	var seeds []string
	seeds = append(seeds, InitialSeeds...)
	seeds = append(seeds, generalClassSeeds...)
	seeds = append(seeds, prescriptionClassSeeds...)
	seeds = append(seeds, dosageFormSeeds...)
	seeds = append(seeds, componentSeeds...)
	seeds = append(seeds, efficacySeeds...)
	seeds = append(seeds, "센트룸")
	return seeds
}
